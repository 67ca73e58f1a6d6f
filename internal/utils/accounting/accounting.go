// Package accounting holds the double-entry invariants shared by the journal
// service and the posting transaction in the repository layer.
package accounting

import (
	"fmt"

	"github.com/ledgerline/ledgerline/internal/apperrors"
	"github.com/ledgerline/ledgerline/internal/core/domain"
)

// ValidateLineShape checks the per-line invariant: both amounts non-negative
// and exactly one of debit/credit strictly positive.
func ValidateLineShape(debit, credit int64) error {
	if debit < 0 || credit < 0 {
		return fmt.Errorf("%w: line amounts must be non-negative (debit=%d, credit=%d)", apperrors.ErrValidation, debit, credit)
	}
	if (debit > 0) == (credit > 0) {
		return fmt.Errorf("%w: a line must carry exactly one of debit or credit (debit=%d, credit=%d)", apperrors.ErrValidation, debit, credit)
	}
	return nil
}

// ValidateEntryForPosting checks the posting invariants for a full line set:
// at least one debit and one credit line, every line well shaped, and
// sum(debit) == sum(credit).
func ValidateEntryForPosting(lines []domain.JournalEntryLine) error {
	var debitSum, creditSum int64
	var debitLines, creditLines int

	for _, line := range lines {
		if err := ValidateLineShape(line.Debit, line.Credit); err != nil {
			return fmt.Errorf("line %d: %w", line.LineNumber, err)
		}
		if line.Debit > 0 {
			debitSum += line.Debit
			debitLines++
		} else {
			creditSum += line.Credit
			creditLines++
		}
	}

	if debitLines == 0 || creditLines == 0 {
		return fmt.Errorf("%w: entry must have at least one debit and one credit line", apperrors.ErrValidation)
	}
	if debitSum != creditSum {
		return fmt.Errorf("%w: entry does not balance (debits=%d, credits=%d)", apperrors.ErrValidation, debitSum, creditSum)
	}
	return nil
}

// SignedDelta returns the change a line applies to its account's running
// balance. A debit increases a debit-normal account and decreases a
// credit-normal one; a credit does the opposite.
func SignedDelta(line domain.JournalEntryLine, normal domain.NormalBalance) int64 {
	amount := line.Amount()
	if (line.Side() == domain.Debit) == (normal == domain.DebitNormal) {
		return amount
	}
	return -amount
}

// TrialBalanceColumns splits a running balance into trial balance columns.
// A positive balance lands in the account's normal column; a negative balance
// flips to the opposite column with its sign dropped.
func TrialBalanceColumns(balance int64, normal domain.NormalBalance) (debit, credit int64) {
	amount := balance
	side := normal
	if balance < 0 {
		amount = -balance
		if normal == domain.DebitNormal {
			side = domain.CreditNormal
		} else {
			side = domain.DebitNormal
		}
	}
	if side == domain.DebitNormal {
		return amount, 0
	}
	return 0, amount
}

// ReverseLines builds the line set that cancels the given lines: same accounts
// and amounts with debit and credit swapped, renumbered from 1.
func ReverseLines(lines []domain.JournalEntryLine) []domain.JournalEntryLine {
	reversed := make([]domain.JournalEntryLine, len(lines))
	for i, line := range lines {
		reversed[i] = domain.JournalEntryLine{
			LineNumber:  i + 1,
			AccountCode: line.AccountCode,
			Debit:       line.Credit,
			Credit:      line.Debit,
		}
	}
	return reversed
}
