// Package repositories declares the persistence ports the services depend on.
package repositories

import (
	"context"
	"time"

	"github.com/ledgerline/ledgerline/internal/core/domain"
	"github.com/ledgerline/ledgerline/internal/dto"
)

// AccountFilter narrows FindAccounts. Non-empty slices combine with inclusive
// OR; all empty means every account (subject to IncludeInactive).
type AccountFilter struct {
	Codes               []int64
	Names               []string
	Tags                []string
	ControlAccountCodes []int64
	IncludeInactive     bool
}

// Empty reports whether no OR-filter was provided.
func (f AccountFilter) Empty() bool {
	return len(f.Codes) == 0 && len(f.Names) == 0 && len(f.Tags) == 0 && len(f.ControlAccountCodes) == 0
}

// AccountRepository persists the chart of accounts and its tags.
type AccountRepository interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByCode(ctx context.Context, code int64, includeInactive bool) (*domain.Account, error)
	FindAccountByName(ctx context.Context, name string) (*domain.Account, error)
	FindAccounts(ctx context.Context, filter AccountFilter) ([]domain.Account, error)
	UpdateAccountName(ctx context.Context, code int64, name string, now time.Time) error
	UpdateControlAccount(ctx context.Context, code int64, controlCode *int64, now time.Time) error
	DeactivateAccount(ctx context.Context, code int64, now time.Time) error
	SetAccountTag(ctx context.Context, code int64, tag string) error
	UnsetAccountTag(ctx context.Context, code int64, tag string) error
	FindTagsByAccountCodes(ctx context.Context, codes []int64) (map[int64][]string, error)
}

// JournalRepository persists journal entries and owns the multi-step
// transactions of the entry lifecycle. PostEntry performs validation, balance
// mutation and the post-time write atomically.
type JournalRepository interface {
	CreateDraftEntry(ctx context.Context, entry domain.JournalEntry) (int64, error)
	FindEntryByRef(ctx context.Context, ref int64) (*domain.JournalEntry, error)
	FindEntryRefByIdempotentKey(ctx context.Context, key string) (int64, error)
	UpdateDraftEntry(ctx context.Context, entry domain.JournalEntry, replaceLines bool) error
	PostEntry(ctx context.Context, ref int64, postTime time.Time) (*domain.JournalEntry, error)
	DeleteDraftEntries(ctx context.Context, refs []int64) ([]int64, error)
	SaveReversal(ctx context.Context, originalRef int64, reversal domain.JournalEntry) (int64, error)
}

// ReportingRepository persists and retrieves point-in-time snapshots.
type ReportingRepository interface {
	SaveFinancialReport(ctx context.Context, report domain.BalanceReport, trialBalance []domain.TrialBalanceLine, balanceSheet []domain.BalanceSheetLine) (int64, error)
	FindLatestReport(ctx context.Context, asOf time.Time) (*domain.BalanceReport, error)
	FindTrialBalanceLines(ctx context.Context, reportID int64) ([]domain.TrialBalanceLine, error)
	FindBalanceSheetLines(ctx context.Context, reportID int64) ([]domain.BalanceSheetLine, error)
}

// RawQueryExecutor is the read/write passthrough behind executeRawQuery.
type RawQueryExecutor interface {
	ExecuteRawQuery(ctx context.Context, query string, params []any) (*dto.QueryResult, error)
}

// Container bundles all repositories for wiring.
type Container struct {
	Account   AccountRepository
	Journal   JournalRepository
	Reporting ReportingRepository
	RawQuery  RawQueryExecutor
}
