// Package services declares the service facades the tool surface depends on.
package services

import (
	"context"
	"time"

	"github.com/ledgerline/ledgerline/internal/core/domain"
	"github.com/ledgerline/ledgerline/internal/dto"
)

// AccountSvcFacade is the Account Directory: chart-of-accounts CRUD,
// hierarchy and tagging.
type AccountSvcFacade interface {
	AddAccount(ctx context.Context, req dto.NewAccount) (*domain.Account, error)
	EnsureManyAccountsExist(ctx context.Context, accounts []dto.NewAccount) ([]dto.EnsureAccountResult, error)
	SetAccountName(ctx context.Context, code int64, name string) error
	SetControlAccount(ctx context.Context, code int64, controlCode int64) error
	GetAccountByCode(ctx context.Context, code int64) (*domain.Account, error)
	GetAccountByName(ctx context.Context, name string) (*domain.Account, error)
	GetManyAccounts(ctx context.Context, filters dto.AccountFilters) ([]domain.Account, error)
	SetAccountTag(ctx context.Context, code int64, tag string) error
	UnsetAccountTag(ctx context.Context, code int64, tag string) error
	SetManyAccountTags(ctx context.Context, pairs []dto.TagPair) []dto.TagResult
	UnsetManyAccountTags(ctx context.Context, pairs []dto.TagPair) []dto.TagResult
	DeactivateAccount(ctx context.Context, code int64) error
	GetHierarchicalChartOfAccounts(ctx context.Context, includeInactive bool) ([]*domain.ChartNode, error)
}

// JournalSvcFacade is the Journal Engine: the draft/post/delete/reverse state
// machine over journal entries.
type JournalSvcFacade interface {
	DraftJournalEntry(ctx context.Context, input dto.DraftEntryInput) (ref int64, created bool, err error)
	UpdateJournalEntry(ctx context.Context, ref int64, input dto.UpdateEntryInput) error
	PostJournalEntry(ctx context.Context, ref int64, postTime time.Time) (*domain.JournalEntry, error)
	DeleteJournalEntryDrafts(ctx context.Context, refs []int64) ([]int64, error)
	ReverseJournalEntry(ctx context.Context, input dto.ReverseEntryInput) (reversalRef int64, created bool, err error)
	GetJournalEntry(ctx context.Context, ref int64) (*domain.JournalEntry, error)
	GetEntryRefByIdempotentKey(ctx context.Context, key string) (int64, error)
}

// ReportingSvcFacade is the Reporting Engine: snapshot generation and
// latest-snapshot retrieval.
type ReportingSvcFacade interface {
	GenerateFinancialReport(ctx context.Context, reportTime time.Time) (*domain.BalanceReport, error)
	GetLatestTrialBalance(ctx context.Context, asOf time.Time) (*dto.TrialBalanceReport, error)
	GetLatestBalanceSheet(ctx context.Context, asOf time.Time) (*dto.BalanceSheetReport, error)
}

// RawQuerySvcFacade exposes the raw query passthrough.
type RawQuerySvcFacade interface {
	ExecuteRawQuery(ctx context.Context, query string, params []any) (*dto.QueryResult, error)
}

// ServiceContainer bundles all service facades for route registration.
type ServiceContainer struct {
	Account   AccountSvcFacade
	Journal   JournalSvcFacade
	Reporting ReportingSvcFacade
	RawQuery  RawQuerySvcFacade
}
