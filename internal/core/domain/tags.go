package domain

// Curated tag taxonomy. Type tags classify what an account fundamentally is,
// classification tags refine balance sheet placement, and reporting tags drive
// report generation.
const (
	TagAsset     = "Asset"
	TagLiability = "Liability"
	TagEquity    = "Equity"
	TagRevenue   = "Revenue"
	TagExpense   = "Expense"

	TagContraAsset     = "Contra Asset"
	TagContraLiability = "Contra Liability"
	TagContraEquity    = "Contra Equity"
	TagContraRevenue   = "Contra Revenue"
	TagContraExpense   = "Contra Expense"

	TagCurrentAsset        = "Current Asset"
	TagNonCurrentAsset     = "Non-Current Asset"
	TagCurrentLiability    = "Current Liability"
	TagNonCurrentLiability = "Non-Current Liability"

	TagBalanceSheetCurrentAsset        = "Balance Sheet - Current Asset"
	TagBalanceSheetNonCurrentAsset     = "Balance Sheet - Non-Current Asset"
	TagBalanceSheetCurrentLiability    = "Balance Sheet - Current Liability"
	TagBalanceSheetNonCurrentLiability = "Balance Sheet - Non-Current Liability"
	TagBalanceSheetEquity              = "Balance Sheet - Equity"

	TagFiscalYearClosingRevenue = "Fiscal Year Closing - Revenue"
	TagFiscalYearClosingExpense = "Fiscal Year Closing - Expense"

	TagCashFlowOperating = "Cash Flow - Operating"
	TagCashFlowInvesting = "Cash Flow - Investing"
	TagCashFlowFinancing = "Cash Flow - Financing"
)

var knownTags = map[string]struct{}{
	TagAsset: {}, TagLiability: {}, TagEquity: {}, TagRevenue: {}, TagExpense: {},
	TagContraAsset: {}, TagContraLiability: {}, TagContraEquity: {}, TagContraRevenue: {}, TagContraExpense: {},
	TagCurrentAsset: {}, TagNonCurrentAsset: {}, TagCurrentLiability: {}, TagNonCurrentLiability: {},
	TagBalanceSheetCurrentAsset: {}, TagBalanceSheetNonCurrentAsset: {},
	TagBalanceSheetCurrentLiability: {}, TagBalanceSheetNonCurrentLiability: {}, TagBalanceSheetEquity: {},
	TagFiscalYearClosingRevenue: {}, TagFiscalYearClosingExpense: {},
	TagCashFlowOperating: {}, TagCashFlowInvesting: {}, TagCashFlowFinancing: {},
}

// IsKnownTag reports whether tag belongs to the curated taxonomy.
func IsKnownTag(tag string) bool {
	_, ok := knownTags[tag]
	return ok
}

type balanceSheetClass struct {
	classification string
	category       string
}

var balanceSheetClasses = map[string]balanceSheetClass{
	TagBalanceSheetCurrentAsset:        {"Assets", "Current Assets"},
	TagBalanceSheetNonCurrentAsset:     {"Assets", "Non-Current Assets"},
	TagBalanceSheetCurrentLiability:    {"Liabilities", "Current Liabilities"},
	TagBalanceSheetNonCurrentLiability: {"Liabilities", "Non-Current Liabilities"},
	TagBalanceSheetEquity:              {"Equity", "Equity"},
}

// BalanceSheetClassification resolves a "Balance Sheet - ..." reporting tag
// into its display classification and category. ok is false for any other tag.
func BalanceSheetClassification(tag string) (classification, category string, ok bool) {
	c, ok := balanceSheetClasses[tag]
	if !ok {
		return "", "", false
	}
	return c.classification, c.category, true
}
