package dto

import (
	"time"

	"github.com/ledgerline/ledgerline/internal/core/domain"
)

// JournalLineInput is one line of draftJournalEntry / updateJournalEntry as it
// arrives over the tool surface: a positive amount plus a side.
type JournalLineInput struct {
	AccountCode int64            `json:"accountCode" binding:"required,gt=0"`
	Amount      int64            `json:"amount" binding:"required,gt=0"`
	Type        domain.EntrySide `json:"type" binding:"required,oneof=DEBIT CREDIT"`
}

// DraftJournalEntryRequest is the argument object of draftJournalEntry.
type DraftJournalEntryRequest struct {
	Date          string             `json:"date" binding:"required"`
	Description   string             `json:"description"`
	Lines         []JournalLineInput `json:"lines" binding:"dive"`
	IdempotentKey string             `json:"idempotentKey"`
}

// UpdateJournalEntryRequest is the argument object of updateJournalEntry.
// Nil fields are left unchanged; a non-nil Lines fully replaces the line set.
type UpdateJournalEntryRequest struct {
	Ref           int64               `json:"ref" binding:"required,gt=0"`
	Date          *string             `json:"date"`
	Description   *string             `json:"description"`
	Lines         *[]JournalLineInput `json:"lines"`
	IdempotentKey *string             `json:"idempotentKey"`
}

// PostJournalEntryRequest is the argument object of postJournalEntry. Date
// defaults to now when omitted.
type PostJournalEntryRequest struct {
	Ref  int64  `json:"ref" binding:"required,gt=0"`
	Date string `json:"date"`
}

// DeleteJournalEntryDraftsRequest is the argument object of
// deleteJournalEntryDrafts.
type DeleteJournalEntryDraftsRequest struct {
	Refs []int64 `json:"refs"`
}

// ReverseJournalEntryRequest is the argument object of reverseJournalEntry.
type ReverseJournalEntryRequest struct {
	Ref           int64  `json:"ref" binding:"required,gt=0"`
	Date          string `json:"date" binding:"required"`
	Description   string `json:"description"`
	IdempotentKey string `json:"idempotentKey"`
}

// DraftEntryInput is the parsed, service-level form of a draft request.
type DraftEntryInput struct {
	EntryTime     time.Time
	Note          string
	Lines         []EntryLineInput
	IdempotentKey string
}

// EntryLineInput is one parsed line with the side already split into
// debit/credit minor-unit amounts.
type EntryLineInput struct {
	AccountCode int64
	Debit       int64
	Credit      int64
}

// UpdateEntryInput is the parsed, service-level form of an update request.
type UpdateEntryInput struct {
	EntryTime     *time.Time
	Note          *string
	Lines         *[]EntryLineInput
	IdempotentKey *string
}

// ReverseEntryInput is the parsed, service-level form of a reversal request.
type ReverseEntryInput struct {
	Ref           int64
	ReversalTime  time.Time
	Note          string
	IdempotentKey string
}

// ToEntryLineInput converts a tool-surface line into its service-level form.
func (l JournalLineInput) ToEntryLineInput() EntryLineInput {
	in := EntryLineInput{AccountCode: l.AccountCode}
	if l.Type == domain.Debit {
		in.Debit = l.Amount
	} else {
		in.Credit = l.Amount
	}
	return in
}

// ToEntryLineInputs converts a slice of tool-surface lines.
func ToEntryLineInputs(lines []JournalLineInput) []EntryLineInput {
	out := make([]EntryLineInput, len(lines))
	for i, l := range lines {
		out[i] = l.ToEntryLineInput()
	}
	return out
}

// JournalEntryResponse mirrors domain.JournalEntry for tool output.
type JournalEntryResponse struct {
	Ref           int64               `json:"ref"`
	EntryTime     time.Time           `json:"entryTime"`
	Note          string              `json:"note"`
	PostTime      *time.Time          `json:"postTime"`
	ReversalOfRef *int64              `json:"reversalOfRef"`
	ReversedByRef *int64              `json:"reversedByRef"`
	Lines         []JournalLineOutput `json:"lines"`
}

// JournalLineOutput is one rendered line of an entry.
type JournalLineOutput struct {
	LineNumber  int   `json:"lineNumber"`
	AccountCode int64 `json:"accountCode"`
	Debit       int64 `json:"debit"`
	Credit      int64 `json:"credit"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its response DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	lines := make([]JournalLineOutput, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = JournalLineOutput{
			LineNumber:  l.LineNumber,
			AccountCode: l.AccountCode,
			Debit:       l.Debit,
			Credit:      l.Credit,
		}
	}
	return JournalEntryResponse{
		Ref:           e.Ref,
		EntryTime:     e.EntryTime,
		Note:          e.Note,
		PostTime:      e.PostTime,
		ReversalOfRef: e.ReversalOfRef,
		ReversedByRef: e.ReversedByRef,
		Lines:         lines,
	}
}
