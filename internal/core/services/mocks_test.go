package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/ledgerline/ledgerline/internal/core/domain"
	portsrepo "github.com/ledgerline/ledgerline/internal/core/ports/repositories"
	"github.com/ledgerline/ledgerline/internal/dto"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepository = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code int64, includeInactive bool) (*domain.Account, error) {
	args := m.Called(ctx, code, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByName(ctx context.Context, name string) (*domain.Account, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccounts(ctx context.Context, filter portsrepo.AccountFilter) ([]domain.Account, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountName(ctx context.Context, code int64, name string, now time.Time) error {
	args := m.Called(ctx, code, name, now)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateControlAccount(ctx context.Context, code int64, controlCode *int64, now time.Time) error {
	args := m.Called(ctx, code, controlCode, now)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, code int64, now time.Time) error {
	args := m.Called(ctx, code, now)
	return args.Error(0)
}

func (m *MockAccountRepository) SetAccountTag(ctx context.Context, code int64, tag string) error {
	args := m.Called(ctx, code, tag)
	return args.Error(0)
}

func (m *MockAccountRepository) UnsetAccountTag(ctx context.Context, code int64, tag string) error {
	args := m.Called(ctx, code, tag)
	return args.Error(0)
}

func (m *MockAccountRepository) FindTagsByAccountCodes(ctx context.Context, codes []int64) (map[int64][]string, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64][]string), args.Error(1)
}

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepository = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) CreateDraftEntry(ctx context.Context, entry domain.JournalEntry) (int64, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJournalRepository) FindEntryByRef(ctx context.Context, ref int64) (*domain.JournalEntry, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindEntryRefByIdempotentKey(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJournalRepository) UpdateDraftEntry(ctx context.Context, entry domain.JournalEntry, replaceLines bool) error {
	args := m.Called(ctx, entry, replaceLines)
	return args.Error(0)
}

func (m *MockJournalRepository) PostEntry(ctx context.Context, ref int64, postTime time.Time) (*domain.JournalEntry, error) {
	args := m.Called(ctx, ref, postTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) DeleteDraftEntries(ctx context.Context, refs []int64) ([]int64, error) {
	args := m.Called(ctx, refs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockJournalRepository) SaveReversal(ctx context.Context, originalRef int64, reversal domain.JournalEntry) (int64, error) {
	args := m.Called(ctx, originalRef, reversal)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) SaveFinancialReport(ctx context.Context, report domain.BalanceReport, trialBalance []domain.TrialBalanceLine, balanceSheet []domain.BalanceSheetLine) (int64, error) {
	args := m.Called(ctx, report, trialBalance, balanceSheet)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportingRepository) FindLatestReport(ctx context.Context, asOf time.Time) (*domain.BalanceReport, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceReport), args.Error(1)
}

func (m *MockReportingRepository) FindTrialBalanceLines(ctx context.Context, reportID int64) ([]domain.TrialBalanceLine, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceLine), args.Error(1)
}

func (m *MockReportingRepository) FindBalanceSheetLines(ctx context.Context, reportID int64) ([]domain.BalanceSheetLine, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceSheetLine), args.Error(1)
}

// --- Mock RawQueryExecutor ---
type MockRawQueryExecutor struct {
	mock.Mock
}

var _ portsrepo.RawQueryExecutor = (*MockRawQueryExecutor)(nil)

func (m *MockRawQueryExecutor) ExecuteRawQuery(ctx context.Context, query string, params []any) (*dto.QueryResult, error) {
	args := m.Called(ctx, query, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QueryResult), args.Error(1)
}
