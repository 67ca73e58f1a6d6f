// Package render turns engine results into the plain-text tables and trees
// that tool callers display verbatim.
package render

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/ledgerline/internal/core/domain"
	"github.com/ledgerline/ledgerline/internal/dto"
)

// Amount formats minor units as a fixed-point decimal string, e.g. 123456
// with 2 places renders as "1234.56".
func Amount(minorUnits int64, places int32) string {
	return decimal.New(minorUnits, -places).StringFixed(places)
}

// Table renders rows as an ASCII table with a header and column-width
// alignment. Numeric-looking cells are the caller's concern; everything is
// treated as text.
func Table(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", w-len(cell)))
		}
		b.WriteString("\n")
	}

	writeRow(headers)
	for i, w := range widths {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(strings.Repeat("-", w))
	}
	b.WriteString("\n")
	for _, row := range rows {
		writeRow(row)
	}
	return strings.TrimRight(b.String(), "\n")
}

// ChartTree renders the account forest as an indented tree with balances,
// two spaces per depth level.
func ChartTree(roots []*domain.ChartNode, places int32) string {
	var b strings.Builder
	domain.WalkChart(roots, func(node *domain.ChartNode, depth int) {
		b.WriteString(strings.Repeat("  ", depth))
		fmt.Fprintf(&b, "%d %s: %s", node.Account.Code, node.Account.Name, Amount(node.Account.Balance, places))
		if !node.Account.IsActive {
			b.WriteString(" (inactive)")
		}
		b.WriteString("\n")
	})
	return strings.TrimRight(b.String(), "\n")
}

// TrialBalanceTable renders trial balance lines plus a totals row.
func TrialBalanceTable(lines []domain.TrialBalanceLine, totalDebit, totalCredit int64, places int32) string {
	rows := make([][]string, 0, len(lines)+1)
	for _, l := range lines {
		rows = append(rows, []string{
			fmt.Sprintf("%d", l.AccountCode),
			l.AccountName,
			Amount(l.Debit, places),
			Amount(l.Credit, places),
		})
	}
	rows = append(rows, []string{"", "Total", Amount(totalDebit, places), Amount(totalCredit, places)})
	return Table([]string{"Code", "Account", "Debit", "Credit"}, rows)
}

// BalanceSheetText renders a balance sheet grouped by classification with
// subtotals and the accounting-equation totals.
func BalanceSheetText(sections []dto.BalanceSheetSection, totalAssets, totalLiabilitiesAndEquity int64, places int32) string {
	var b strings.Builder
	for _, section := range sections {
		fmt.Fprintf(&b, "%s\n", section.Classification)
		for _, l := range section.Lines {
			fmt.Fprintf(&b, "  %d %s: %s\n", l.AccountCode, l.AccountName, Amount(l.Amount, places))
		}
		fmt.Fprintf(&b, "  Subtotal %s: %s\n", section.Classification, Amount(section.Subtotal, places))
	}
	fmt.Fprintf(&b, "Total Assets: %s\n", Amount(totalAssets, places))
	fmt.Fprintf(&b, "Total Liabilities + Equity: %s", Amount(totalLiabilitiesAndEquity, places))
	return b.String()
}

// QueryTable renders a raw query result as an ASCII table.
func QueryTable(columns []string, rows [][]any) string {
	textRows := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, v := range row {
			if v == nil {
				cells[j] = "NULL"
			} else {
				cells[j] = fmt.Sprintf("%v", v)
			}
		}
		textRows[i] = cells
	}
	return Table(columns, textRows)
}
