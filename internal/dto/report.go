package dto

import (
	"time"

	"github.com/ledgerline/ledgerline/internal/core/domain"
)

// ReportQueryRequest is the argument object of getLatestTrialBalance and
// getLatestBalanceSheet. AsOfDate defaults to now when omitted.
type ReportQueryRequest struct {
	AsOfDate string `json:"asOfDate"`
}

// TrialBalanceReport is a retrieved trial balance snapshot with totals.
type TrialBalanceReport struct {
	ReportID    int64                     `json:"reportID"`
	ReportTime  time.Time                 `json:"reportTime"`
	Lines       []domain.TrialBalanceLine `json:"lines"`
	TotalDebit  int64                     `json:"totalDebit"`
	TotalCredit int64                     `json:"totalCredit"`
}

// BalanceSheetSection groups balance sheet lines under one classification.
type BalanceSheetSection struct {
	Classification string                    `json:"classification"`
	Lines          []domain.BalanceSheetLine `json:"lines"`
	Subtotal       int64                     `json:"subtotal"`
}

// BalanceSheetReport is a retrieved balance sheet snapshot grouped by
// classification, with the accounting-equation totals exposed for callers.
type BalanceSheetReport struct {
	ReportID                  int64                 `json:"reportID"`
	ReportTime                time.Time             `json:"reportTime"`
	Sections                  []BalanceSheetSection `json:"sections"`
	TotalAssets               int64                 `json:"totalAssets"`
	TotalLiabilitiesAndEquity int64                 `json:"totalLiabilitiesAndEquity"`
}
