package dto

import (
	"time"

	"github.com/ledgerline/ledgerline/internal/core/domain"
)

// NewAccount describes one account to create.
type NewAccount struct {
	Code          int64                `json:"code" binding:"required,gt=0"`
	Name          string               `json:"name" binding:"required"`
	NormalBalance domain.NormalBalance `json:"normalBalance" binding:"required,oneof=DEBIT CREDIT"`
}

// EnsureAccountsRequest is the argument object of ensureAccountsExist.
type EnsureAccountsRequest struct {
	Accounts []NewAccount `json:"accounts" binding:"dive"`
}

// EnsureAccountResult reports the per-account outcome of ensureAccountsExist.
type EnsureAccountResult struct {
	Code    int64  `json:"code"`
	Created bool   `json:"created"`
	Message string `json:"message"`
}

// RenameAccountRequest is the argument object of renameAccount.
type RenameAccountRequest struct {
	Code int64  `json:"code" binding:"required,gt=0"`
	Name string `json:"name" binding:"required"`
}

// SetControlAccountRequest is the argument object of setControlAccount.
type SetControlAccountRequest struct {
	AccountCode        int64 `json:"accountCode" binding:"required,gt=0"`
	ControlAccountCode int64 `json:"controlAccountCode" binding:"required,gt=0"`
}

// AccountFilters narrows getAccounts results. Non-empty filter slices combine
// with inclusive OR; no filters means all active accounts.
type AccountFilters struct {
	Codes               []int64  `json:"codes"`
	Names               []string `json:"names"`
	Tags                []string `json:"tags"`
	ControlAccountCodes []int64  `json:"controlAccountCodes"`
}

// Empty reports whether no filter was provided.
func (f AccountFilters) Empty() bool {
	return len(f.Codes) == 0 && len(f.Names) == 0 && len(f.Tags) == 0 && len(f.ControlAccountCodes) == 0
}

// TagPair is one (account, tag) item in setAccountTags / unsetAccountTags.
type TagPair struct {
	Code int64  `json:"code" binding:"required,gt=0"`
	Tag  string `json:"tag" binding:"required"`
}

// AccountTagsRequest is the argument object of setAccountTags and
// unsetAccountTags.
type AccountTagsRequest struct {
	Tags []TagPair `json:"tags" binding:"dive"`
}

// TagResult reports the per-pair outcome of a batch tag operation.
type TagResult struct {
	Code    int64  `json:"code"`
	Tag     string `json:"tag"`
	Applied bool   `json:"applied"`
	Message string `json:"message"`
}

// ChartOfAccountsRequest is the argument object of getChartOfAccounts.
type ChartOfAccountsRequest struct {
	IncludeInactive bool `json:"includeInactive"`
}

// AccountResponse mirrors domain.Account for tool output.
type AccountResponse struct {
	Code               int64                `json:"code"`
	Name               string               `json:"name"`
	NormalBalance      domain.NormalBalance `json:"normalBalance"`
	Balance            int64                `json:"balance"`
	ControlAccountCode *int64               `json:"controlAccountCode"`
	IsActive           bool                 `json:"isActive"`
	IsPostingAccount   bool                 `json:"isPostingAccount"`
	CreatedAt          time.Time            `json:"createdAt"`
	UpdatedAt          time.Time            `json:"updatedAt"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		Code:               acc.Code,
		Name:               acc.Name,
		NormalBalance:      acc.NormalBalance,
		Balance:            acc.Balance,
		ControlAccountCode: acc.ControlAccountCode,
		IsActive:           acc.IsActive,
		IsPostingAccount:   acc.IsPostingAccount,
		CreatedAt:          acc.CreatedAt,
		UpdatedAt:          acc.UpdatedAt,
	}
}

// ToAccountResponses converts a slice of accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}
