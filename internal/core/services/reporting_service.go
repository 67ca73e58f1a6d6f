package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/ledgerline/ledgerline/internal/core/domain"
	portsrepo "github.com/ledgerline/ledgerline/internal/core/ports/repositories"
	portssvc "github.com/ledgerline/ledgerline/internal/core/ports/services"
	"github.com/ledgerline/ledgerline/internal/dto"
	"github.com/ledgerline/ledgerline/internal/utils/accounting"
)

// reportingService implements the Reporting Engine. Reports are persisted
// snapshots of account balances at generation time; retrieval never
// recomputes, it reads the latest snapshot at or before the asked time.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, accountRepo portsrepo.AccountRepository) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo, accountRepo: accountRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// GenerateFinancialReport snapshots every active account into trial balance
// lines, and those carrying a balance sheet tag into balance sheet lines,
// under a single report row.
func (s *reportingService) GenerateFinancialReport(ctx context.Context, reportTime time.Time) (*domain.BalanceReport, error) {
	accounts, err := s.accountRepo.FindAccounts(ctx, portsrepo.AccountFilter{})
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts for report")
		return nil, err
	}

	codes := make([]int64, len(accounts))
	for i, a := range accounts {
		codes[i] = a.Code
	}
	tagsByCode, err := s.accountRepo.FindTagsByAccountCodes(ctx, codes)
	if err != nil {
		s.LogError(ctx, err, "Failed to load account tags for report")
		return nil, err
	}

	var tbLines []domain.TrialBalanceLine
	var bsLines []domain.BalanceSheetLine
	for _, a := range accounts {
		debit, credit := accounting.TrialBalanceColumns(a.Balance, a.NormalBalance)
		tbLines = append(tbLines, domain.TrialBalanceLine{
			AccountCode: a.Code,
			AccountName: a.Name,
			Debit:       debit,
			Credit:      credit,
		})

		// One balance sheet line per account; the first matching tag wins.
		for _, tag := range tagsByCode[a.Code] {
			classification, category, ok := domain.BalanceSheetClassification(tag)
			if !ok {
				continue
			}
			bsLines = append(bsLines, domain.BalanceSheetLine{
				AccountCode:    a.Code,
				AccountName:    a.Name,
				Classification: classification,
				Category:       category,
				Amount:         a.Balance,
			})
			break
		}
	}

	report := domain.BalanceReport{
		ReportTime: reportTime,
		ReportType: domain.ReportTypeFinancial,
		Name:       "Financial report " + reportTime.UTC().Format("2006-01-02"),
		CreatedAt:  time.Now().UTC(),
	}

	id, err := s.reportingRepo.SaveFinancialReport(ctx, report, tbLines, bsLines)
	if err != nil {
		s.LogError(ctx, err, "Failed to save financial report")
		return nil, err
	}
	report.ID = id

	s.LogInfo(ctx, "Financial report generated",
		slog.Int64("report_id", id),
		slog.Int("trial_balance_lines", len(tbLines)),
		slog.Int("balance_sheet_lines", len(bsLines)))
	return &report, nil
}

// GetLatestTrialBalance returns the trial balance of the most recent report at
// or before asOf. ErrNotFound means no report exists in that window.
func (s *reportingService) GetLatestTrialBalance(ctx context.Context, asOf time.Time) (*dto.TrialBalanceReport, error) {
	report, err := s.reportingRepo.FindLatestReport(ctx, asOf)
	if err != nil {
		return nil, err
	}
	lines, err := s.reportingRepo.FindTrialBalanceLines(ctx, report.ID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load trial balance lines", slog.Int64("report_id", report.ID))
		return nil, err
	}

	out := &dto.TrialBalanceReport{
		ReportID:   report.ID,
		ReportTime: report.ReportTime,
		Lines:      lines,
	}
	for _, l := range lines {
		out.TotalDebit += l.Debit
		out.TotalCredit += l.Credit
	}
	return out, nil
}

// balanceSheetOrder fixes the section order of a rendered balance sheet.
var balanceSheetOrder = []string{"Assets", "Liabilities", "Equity"}

// GetLatestBalanceSheet returns the balance sheet of the most recent report at
// or before asOf, grouped into Assets, Liabilities and Equity sections.
func (s *reportingService) GetLatestBalanceSheet(ctx context.Context, asOf time.Time) (*dto.BalanceSheetReport, error) {
	report, err := s.reportingRepo.FindLatestReport(ctx, asOf)
	if err != nil {
		return nil, err
	}
	lines, err := s.reportingRepo.FindBalanceSheetLines(ctx, report.ID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load balance sheet lines", slog.Int64("report_id", report.ID))
		return nil, err
	}

	byClassification := make(map[string][]domain.BalanceSheetLine)
	for _, l := range lines {
		byClassification[l.Classification] = append(byClassification[l.Classification], l)
	}

	out := &dto.BalanceSheetReport{
		ReportID:   report.ID,
		ReportTime: report.ReportTime,
	}
	for _, classification := range balanceSheetOrder {
		sectionLines := byClassification[classification]
		if len(sectionLines) == 0 {
			continue
		}
		section := dto.BalanceSheetSection{
			Classification: classification,
			Lines:          sectionLines,
		}
		for _, l := range sectionLines {
			section.Subtotal += l.Amount
		}
		switch classification {
		case "Assets":
			out.TotalAssets += section.Subtotal
		default:
			out.TotalLiabilitiesAndEquity += section.Subtotal
		}
		out.Sections = append(out.Sections, section)
	}
	return out, nil
}
