package domain

import "time"

// EntrySide indicates whether a journal entry line is a debit or a credit.
type EntrySide string

const (
	Debit  EntrySide = "DEBIT"
	Credit EntrySide = "CREDIT"
)

// JournalEntry is a single financial event. PostTime is nil while the entry is
// a draft; once set the entry and its lines are immutable.
type JournalEntry struct {
	Ref           int64              `json:"ref"`
	EntryTime     time.Time          `json:"entryTime"`
	Note          string             `json:"note"`
	PostTime      *time.Time         `json:"postTime"`
	ReversalOfRef *int64             `json:"reversalOfRef"` // set on a reversal, points at the entry it cancels
	ReversedByRef *int64             `json:"reversedByRef"` // set on the original once reversed
	IdempotentKey string             `json:"idempotentKey"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
	Lines         []JournalEntryLine `json:"lines,omitempty"`
}

// IsPosted reports whether the entry has left the draft state.
func (e *JournalEntry) IsPosted() bool {
	return e.PostTime != nil
}

// JournalEntryLine is one leg of a journal entry. Exactly one of Debit and
// Credit is strictly positive; both are minor currency units.
type JournalEntryLine struct {
	EntryRef    int64 `json:"entryRef"`
	LineNumber  int   `json:"lineNumber"`
	AccountCode int64 `json:"accountCode"`
	Debit       int64 `json:"debit"`
	Credit      int64 `json:"credit"`
}

// Side returns which side of the ledger the line affects.
func (l JournalEntryLine) Side() EntrySide {
	if l.Debit > 0 {
		return Debit
	}
	return Credit
}

// Amount returns the positive amount of whichever side the line carries.
func (l JournalEntryLine) Amount() int64 {
	if l.Debit > 0 {
		return l.Debit
	}
	return l.Credit
}
