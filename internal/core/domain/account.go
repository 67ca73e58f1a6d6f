package domain

import "time"

// NormalBalance defines which side of the ledger conventionally increases an
// account's balance.
type NormalBalance string

const (
	DebitNormal  NormalBalance = "DEBIT"
	CreditNormal NormalBalance = "CREDIT"
)

// Account represents one account in the chart of accounts. The code is the
// stable caller-facing identifier; the running balance is maintained only by
// posting journal entries and is stored in minor currency units.
type Account struct {
	Code               int64         `json:"code"`
	Name               string        `json:"name"`
	NormalBalance      NormalBalance `json:"normalBalance"`
	Balance            int64         `json:"balance"`
	ControlAccountCode *int64        `json:"controlAccountCode"` // parent in the chart hierarchy, nil for roots
	IsActive           bool          `json:"isActive"`
	IsPostingAccount   bool          `json:"isPostingAccount"`
	CreatedAt          time.Time     `json:"createdAt"`
	UpdatedAt          time.Time     `json:"updatedAt"`
}

// AccountTag is a single (account, tag) classification pair.
type AccountTag struct {
	AccountCode int64  `json:"accountCode"`
	Tag         string `json:"tag"`
}
