package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerline/ledgerline/internal/apperrors"
	"github.com/ledgerline/ledgerline/internal/core/domain"
	portsrepo "github.com/ledgerline/ledgerline/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for report snapshots.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// SaveFinancialReport persists the report header and both line sets in one
// transaction and returns the assigned report id.
func (r *PgxReportingRepository) SaveFinancialReport(ctx context.Context, report domain.BalanceReport, trialBalance []domain.TrialBalanceLine, balanceSheet []domain.BalanceSheetLine) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	headerQuery := `
		INSERT INTO balance_reports (report_time, report_type, name, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id;
	`
	var id int64
	if err := tx.QueryRow(ctx, headerQuery, report.ReportTime, report.ReportType, report.Name, report.CreatedAt).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert balance report: %w", err)
	}

	batch := &pgx.Batch{}
	tbQuery := `
		INSERT INTO trial_balance_lines (report_id, account_code, debit, credit)
		VALUES ($1, $2, $3, $4);
	`
	for _, l := range trialBalance {
		batch.Queue(tbQuery, id, l.AccountCode, l.Debit, l.Credit)
	}
	bsQuery := `
		INSERT INTO balance_sheet_lines (report_id, account_code, classification, category, amount)
		VALUES ($1, $2, $3, $4, $5);
	`
	for _, l := range balanceSheet {
		batch.Queue(bsQuery, id, l.AccountCode, l.Classification, l.Category, l.Amount)
	}
	if batch.Len() > 0 {
		br := tx.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return 0, fmt.Errorf("failed to insert report line: %w", err)
			}
		}
		if err := br.Close(); err != nil {
			return 0, fmt.Errorf("failed to insert report lines: %w", err)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return id, nil
}

// FindLatestReport returns the most recent report at or before asOf.
func (r *PgxReportingRepository) FindLatestReport(ctx context.Context, asOf time.Time) (*domain.BalanceReport, error) {
	query := `
		SELECT id, report_time, report_type, name, created_at
		FROM balance_reports
		WHERE report_time <= $1
		ORDER BY report_time DESC, id DESC
		LIMIT 1;
	`
	var report domain.BalanceReport
	err := r.Pool.QueryRow(ctx, query, asOf).Scan(&report.ID, &report.ReportTime, &report.ReportType, &report.Name, &report.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no report at or before %s", apperrors.ErrNotFound, asOf.UTC().Format(time.RFC3339))
		}
		return nil, fmt.Errorf("failed to find latest report: %w", err)
	}
	return &report, nil
}

// FindTrialBalanceLines returns a report's trial balance lines with current
// account names joined in, ordered by account code.
func (r *PgxReportingRepository) FindTrialBalanceLines(ctx context.Context, reportID int64) ([]domain.TrialBalanceLine, error) {
	query := `
		SELECT l.report_id, l.account_code, a.name, l.debit, l.credit
		FROM trial_balance_lines l
		JOIN accounts a ON a.code = l.account_code
		WHERE l.report_id = $1
		ORDER BY l.account_code;
	`
	rows, err := r.Pool.Query(ctx, query, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trial balance lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.TrialBalanceLine
	for rows.Next() {
		var l domain.TrialBalanceLine
		if err := rows.Scan(&l.ReportID, &l.AccountCode, &l.AccountName, &l.Debit, &l.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan trial balance line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance lines: %w", err)
	}
	return lines, nil
}

// FindBalanceSheetLines returns a report's balance sheet lines with current
// account names joined in, ordered by classification then account code.
func (r *PgxReportingRepository) FindBalanceSheetLines(ctx context.Context, reportID int64) ([]domain.BalanceSheetLine, error) {
	query := `
		SELECT l.report_id, l.account_code, a.name, l.classification, l.category, l.amount
		FROM balance_sheet_lines l
		JOIN accounts a ON a.code = l.account_code
		WHERE l.report_id = $1
		ORDER BY l.classification, l.account_code;
	`
	rows, err := r.Pool.Query(ctx, query, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to query balance sheet lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.BalanceSheetLine
	for rows.Next() {
		var l domain.BalanceSheetLine
		if err := rows.Scan(&l.ReportID, &l.AccountCode, &l.AccountName, &l.Classification, &l.Category, &l.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan balance sheet line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating balance sheet lines: %w", err)
	}
	return lines, nil
}
