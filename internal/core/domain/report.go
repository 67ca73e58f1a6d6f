package domain

import "time"

// ReportTypeFinancial is the report type written by generateFinancialReport; a
// single report carries both the trial balance and balance sheet snapshots.
const ReportTypeFinancial = "FINANCIAL"

// BalanceReport is the immutable header of a point-in-time snapshot.
type BalanceReport struct {
	ID         int64     `json:"id"`
	ReportTime time.Time `json:"reportTime"`
	ReportType string    `json:"reportType"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TrialBalanceLine snapshots one account's balance split into debit and credit
// columns at the report time. AccountName is joined in on read for display.
type TrialBalanceLine struct {
	ReportID    int64  `json:"reportID"`
	AccountCode int64  `json:"accountCode"`
	AccountName string `json:"accountName,omitempty"`
	Debit       int64  `json:"debit"`
	Credit      int64  `json:"credit"`
}

// BalanceSheetLine snapshots one tagged account's classification and amount at
// the report time.
type BalanceSheetLine struct {
	ReportID       int64  `json:"reportID"`
	AccountCode    int64  `json:"accountCode"`
	AccountName    string `json:"accountName,omitempty"`
	Classification string `json:"classification"`
	Category       string `json:"category"`
	Amount         int64  `json:"amount"`
}
