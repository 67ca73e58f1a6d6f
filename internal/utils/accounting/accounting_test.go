package accounting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/ledgerline/internal/apperrors"
	"github.com/ledgerline/ledgerline/internal/core/domain"
	"github.com/ledgerline/ledgerline/internal/utils/accounting"
)

func TestValidateLineShape(t *testing.T) {
	tests := []struct {
		name    string
		debit   int64
		credit  int64
		wantErr bool
	}{
		{"debit only", 100, 0, false},
		{"credit only", 0, 100, false},
		{"both sides", 100, 100, true},
		{"neither side", 0, 0, true},
		{"negative debit", -1, 0, true},
		{"negative credit", 0, -1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := accounting.ValidateLineShape(tt.debit, tt.credit)
			if tt.wantErr {
				require.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateEntryForPosting(t *testing.T) {
	balanced := []domain.JournalEntryLine{
		{LineNumber: 1, AccountCode: 100, Debit: 1000},
		{LineNumber: 2, AccountCode: 200, Credit: 600},
		{LineNumber: 3, AccountCode: 201, Credit: 400},
	}
	require.NoError(t, accounting.ValidateEntryForPosting(balanced))

	unbalanced := []domain.JournalEntryLine{
		{LineNumber: 1, AccountCode: 100, Debit: 1000},
		{LineNumber: 2, AccountCode: 200, Credit: 999},
	}
	require.ErrorIs(t, accounting.ValidateEntryForPosting(unbalanced), apperrors.ErrValidation)

	debitOnly := []domain.JournalEntryLine{
		{LineNumber: 1, AccountCode: 100, Debit: 1000},
	}
	require.ErrorIs(t, accounting.ValidateEntryForPosting(debitOnly), apperrors.ErrValidation)

	require.ErrorIs(t, accounting.ValidateEntryForPosting(nil), apperrors.ErrValidation)
}

func TestSignedDelta(t *testing.T) {
	debitLine := domain.JournalEntryLine{Debit: 100}
	creditLine := domain.JournalEntryLine{Credit: 100}

	// A debit grows a debit-normal account, shrinks a credit-normal one.
	assert.Equal(t, int64(100), accounting.SignedDelta(debitLine, domain.DebitNormal))
	assert.Equal(t, int64(-100), accounting.SignedDelta(debitLine, domain.CreditNormal))
	assert.Equal(t, int64(100), accounting.SignedDelta(creditLine, domain.CreditNormal))
	assert.Equal(t, int64(-100), accounting.SignedDelta(creditLine, domain.DebitNormal))
}

func TestTrialBalanceColumns(t *testing.T) {
	debit, credit := accounting.TrialBalanceColumns(1000, domain.DebitNormal)
	assert.Equal(t, int64(1000), debit)
	assert.Equal(t, int64(0), credit)

	debit, credit = accounting.TrialBalanceColumns(1000, domain.CreditNormal)
	assert.Equal(t, int64(0), debit)
	assert.Equal(t, int64(1000), credit)

	// Negative balances flip to the opposite column, sign dropped.
	debit, credit = accounting.TrialBalanceColumns(-250, domain.DebitNormal)
	assert.Equal(t, int64(0), debit)
	assert.Equal(t, int64(250), credit)

	debit, credit = accounting.TrialBalanceColumns(-250, domain.CreditNormal)
	assert.Equal(t, int64(250), debit)
	assert.Equal(t, int64(0), credit)
}

func TestReverseLines(t *testing.T) {
	original := []domain.JournalEntryLine{
		{EntryRef: 3, LineNumber: 1, AccountCode: 100, Debit: 1000},
		{EntryRef: 3, LineNumber: 2, AccountCode: 200, Credit: 1000},
	}

	reversed := accounting.ReverseLines(original)

	require.Len(t, reversed, 2)
	assert.Equal(t, int64(1000), reversed[0].Credit)
	assert.Equal(t, int64(0), reversed[0].Debit)
	assert.Equal(t, int64(1000), reversed[1].Debit)
	assert.Equal(t, 1, reversed[0].LineNumber)
	assert.Equal(t, 2, reversed[1].LineNumber)
	assert.Equal(t, int64(0), reversed[0].EntryRef)

	// Reversal of a reversal reproduces the original sides.
	doubled := accounting.ReverseLines(reversed)
	assert.Equal(t, int64(1000), doubled[0].Debit)
	assert.Equal(t, int64(1000), doubled[1].Credit)
}
