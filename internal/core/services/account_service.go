package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ledgerline/ledgerline/internal/apperrors"
	"github.com/ledgerline/ledgerline/internal/core/domain"
	portsrepo "github.com/ledgerline/ledgerline/internal/core/ports/repositories"
	portssvc "github.com/ledgerline/ledgerline/internal/core/ports/services"
	"github.com/ledgerline/ledgerline/internal/dto"
)

// maxHierarchyDepth bounds the ancestor walk in SetControlAccount; a chart of
// accounts deeper than this indicates corrupt data.
const maxHierarchyDepth = 64

// accountService implements the Account Directory over the account repository.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepository
}

// NewAccountService creates a new account service.
func NewAccountService(repo portsrepo.AccountRepository) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: repo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// AddAccount creates a single account. Duplicate codes or names surface as
// ErrDuplicate from the repository.
func (s *accountService) AddAccount(ctx context.Context, req dto.NewAccount) (*domain.Account, error) {
	if req.NormalBalance != domain.DebitNormal && req.NormalBalance != domain.CreditNormal {
		return nil, fmt.Errorf("%w: normal balance must be DEBIT or CREDIT", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	account := domain.Account{
		Code:             req.Code,
		Name:             req.Name,
		NormalBalance:    req.NormalBalance,
		Balance:          0,
		IsActive:         true,
		IsPostingAccount: true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save account", slog.Int64("code", req.Code))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.Int64("code", account.Code), slog.String("name", account.Name))
	return &account, nil
}

// EnsureManyAccountsExist creates each account that does not exist yet and
// reports "already exists" for those that do, without mutating them.
func (s *accountService) EnsureManyAccountsExist(ctx context.Context, accounts []dto.NewAccount) ([]dto.EnsureAccountResult, error) {
	results := make([]dto.EnsureAccountResult, 0, len(accounts))
	for _, req := range accounts {
		result := dto.EnsureAccountResult{Code: req.Code}

		_, err := s.accountRepo.FindAccountByCode(ctx, req.Code, true)
		switch {
		case err == nil:
			result.Message = fmt.Sprintf("Account %d already exists", req.Code)
		case errors.Is(err, apperrors.ErrNotFound):
			if _, addErr := s.AddAccount(ctx, req); addErr != nil {
				result.Message = fmt.Sprintf("Failed to create account %d: %v", req.Code, addErr)
			} else {
				result.Created = true
				result.Message = fmt.Sprintf("Account %d (%s) created", req.Code, req.Name)
			}
		default:
			return nil, err
		}

		results = append(results, result)
	}
	return results, nil
}

// SetAccountName renames an account.
func (s *accountService) SetAccountName(ctx context.Context, code int64, name string) error {
	if name == "" {
		return fmt.Errorf("%w: account name must not be empty", apperrors.ErrValidation)
	}
	return s.accountRepo.UpdateAccountName(ctx, code, name, time.Now().UTC())
}

// SetControlAccount re-parents an account in the chart hierarchy. A
// self-reference is rejected before any lookup; an assignment that would close
// a cycle is rejected as a conflict.
func (s *accountService) SetControlAccount(ctx context.Context, code int64, controlCode int64) error {
	if code == controlCode {
		return fmt.Errorf("%w: account %d cannot be its own control account", apperrors.ErrValidation, code)
	}

	if _, err := s.accountRepo.FindAccountByCode(ctx, code, true); err != nil {
		return err
	}
	control, err := s.accountRepo.FindAccountByCode(ctx, controlCode, true)
	if err != nil {
		return err
	}

	// Walk the would-be ancestor chain; finding code again means the
	// assignment would close a cycle.
	seen := map[int64]bool{code: true}
	for depth := 0; control.ControlAccountCode != nil; depth++ {
		parentCode := *control.ControlAccountCode
		if parentCode == code || seen[parentCode] || depth >= maxHierarchyDepth {
			return fmt.Errorf("%w: setting %d as control account of %d would create a cycle", apperrors.ErrConflict, controlCode, code)
		}
		seen[parentCode] = true
		control, err = s.accountRepo.FindAccountByCode(ctx, parentCode, true)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				break // orphaned ancestor, chain ends here
			}
			return err
		}
	}

	if err := s.accountRepo.UpdateControlAccount(ctx, code, &controlCode, time.Now().UTC()); err != nil {
		return err
	}

	s.LogInfo(ctx, "Control account set", slog.Int64("code", code), slog.Int64("control_code", controlCode))
	return nil
}

// GetAccountByCode returns an active account by code.
func (s *accountService) GetAccountByCode(ctx context.Context, code int64) (*domain.Account, error) {
	return s.accountRepo.FindAccountByCode(ctx, code, false)
}

// GetAccountByName returns an active account by name.
func (s *accountService) GetAccountByName(ctx context.Context, name string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByName(ctx, name)
}

// GetManyAccounts returns active accounts matching any of the provided
// filters (inclusive OR), sorted by code and deduplicated. No filters means
// all active accounts.
func (s *accountService) GetManyAccounts(ctx context.Context, filters dto.AccountFilters) ([]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccounts(ctx, portsrepo.AccountFilter{
		Codes:               filters.Codes,
		Names:               filters.Names,
		Tags:                filters.Tags,
		ControlAccountCodes: filters.ControlAccountCodes,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to find accounts")
		return nil, err
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}

// SetAccountTag attaches one taxonomy tag to an account; setting an existing
// pair is a no-op.
func (s *accountService) SetAccountTag(ctx context.Context, code int64, tag string) error {
	if !domain.IsKnownTag(tag) {
		return fmt.Errorf("%w: unknown tag %q", apperrors.ErrValidation, tag)
	}
	if _, err := s.accountRepo.FindAccountByCode(ctx, code, true); err != nil {
		return err
	}
	return s.accountRepo.SetAccountTag(ctx, code, tag)
}

// UnsetAccountTag removes one tag pair; removing a non-existent pair is a
// no-op.
func (s *accountService) UnsetAccountTag(ctx context.Context, code int64, tag string) error {
	if _, err := s.accountRepo.FindAccountByCode(ctx, code, true); err != nil {
		return err
	}
	return s.accountRepo.UnsetAccountTag(ctx, code, tag)
}

// SetManyAccountTags applies tag pairs with per-item skip-and-continue:
// missing accounts and unknown tags are reported, not fatal.
func (s *accountService) SetManyAccountTags(ctx context.Context, pairs []dto.TagPair) []dto.TagResult {
	results := make([]dto.TagResult, 0, len(pairs))
	for _, pair := range pairs {
		result := dto.TagResult{Code: pair.Code, Tag: pair.Tag}
		if err := s.SetAccountTag(ctx, pair.Code, pair.Tag); err != nil {
			result.Message = fmt.Sprintf("Skipped tag %q for account %d: %v", pair.Tag, pair.Code, err)
			s.LogWarn(ctx, "Skipped account tag", slog.Int64("code", pair.Code), slog.String("tag", pair.Tag), slog.String("reason", err.Error()))
		} else {
			result.Applied = true
			result.Message = fmt.Sprintf("Tag %q set on account %d", pair.Tag, pair.Code)
		}
		results = append(results, result)
	}
	return results
}

// UnsetManyAccountTags removes tag pairs with per-item skip-and-continue.
func (s *accountService) UnsetManyAccountTags(ctx context.Context, pairs []dto.TagPair) []dto.TagResult {
	results := make([]dto.TagResult, 0, len(pairs))
	for _, pair := range pairs {
		result := dto.TagResult{Code: pair.Code, Tag: pair.Tag}
		if err := s.UnsetAccountTag(ctx, pair.Code, pair.Tag); err != nil {
			result.Message = fmt.Sprintf("Skipped tag %q for account %d: %v", pair.Tag, pair.Code, err)
		} else {
			result.Applied = true
			result.Message = fmt.Sprintf("Tag %q unset on account %d", pair.Tag, pair.Code)
		}
		results = append(results, result)
	}
	return results
}

// DeactivateAccount soft-deletes an account; it disappears from default
// lookups but stays referenced by history.
func (s *accountService) DeactivateAccount(ctx context.Context, code int64) error {
	if err := s.accountRepo.DeactivateAccount(ctx, code, time.Now().UTC()); err != nil {
		return err
	}
	s.LogInfo(ctx, "Account deactivated", slog.Int64("code", code))
	return nil
}

// GetHierarchicalChartOfAccounts builds the control-account forest.
func (s *accountService) GetHierarchicalChartOfAccounts(ctx context.Context, includeInactive bool) ([]*domain.ChartNode, error) {
	accounts, err := s.accountRepo.FindAccounts(ctx, portsrepo.AccountFilter{IncludeInactive: includeInactive})
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts for chart")
		return nil, err
	}
	return domain.BuildAccountForest(accounts), nil
}
