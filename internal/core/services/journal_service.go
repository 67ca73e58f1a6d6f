package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ledgerline/ledgerline/internal/apperrors"
	"github.com/ledgerline/ledgerline/internal/core/domain"
	portsrepo "github.com/ledgerline/ledgerline/internal/core/ports/repositories"
	portssvc "github.com/ledgerline/ledgerline/internal/core/ports/services"
	"github.com/ledgerline/ledgerline/internal/dto"
	"github.com/ledgerline/ledgerline/internal/utils/accounting"
)

// journalService implements the Journal Engine state machine. Drafts may be
// unbalanced; balance is enforced at posting time inside the repository
// transaction.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepository
}

// NewJournalService creates a new journal service.
func NewJournalService(repo portsrepo.JournalRepository) portssvc.JournalSvcFacade {
	return &journalService{journalRepo: repo}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func buildEntryLines(inputs []dto.EntryLineInput) ([]domain.JournalEntryLine, error) {
	lines := make([]domain.JournalEntryLine, len(inputs))
	for i, in := range inputs {
		line := domain.JournalEntryLine{
			LineNumber:  i + 1,
			AccountCode: in.AccountCode,
			Debit:       in.Debit,
			Credit:      in.Credit,
		}
		if err := accounting.ValidateLineShape(line.Debit, line.Credit); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		lines[i] = line
	}
	return lines, nil
}

// DraftJournalEntry creates a draft entry. With an idempotent key, an entry
// already recorded under that key is returned instead of creating a new one,
// and created reports false.
func (s *journalService) DraftJournalEntry(ctx context.Context, input dto.DraftEntryInput) (int64, bool, error) {
	if input.EntryTime.IsZero() || input.EntryTime.Unix() <= 0 {
		return 0, false, fmt.Errorf("%w: entry time must be a valid, positive timestamp", apperrors.ErrValidation)
	}
	// Drafts may be unbalanced or even empty; only posting enforces balance.
	lines, err := buildEntryLines(input.Lines)
	if err != nil {
		return 0, false, err
	}

	if input.IdempotentKey != "" {
		ref, err := s.journalRepo.FindEntryRefByIdempotentKey(ctx, input.IdempotentKey)
		if err == nil {
			s.LogInfo(ctx, "Draft entry matched idempotent key", slog.Int64("ref", ref), slog.String("idempotent_key", input.IdempotentKey))
			return ref, false, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return 0, false, err
		}
	}

	now := time.Now().UTC()
	entry := domain.JournalEntry{
		EntryTime:     input.EntryTime,
		Note:          input.Note,
		IdempotentKey: input.IdempotentKey,
		CreatedAt:     now,
		UpdatedAt:     now,
		Lines:         lines,
	}

	ref, err := s.journalRepo.CreateDraftEntry(ctx, entry)
	if err != nil {
		// Lost a race on the idempotent key; return the winner.
		if input.IdempotentKey != "" && errors.Is(err, apperrors.ErrDuplicate) {
			if existing, lookupErr := s.journalRepo.FindEntryRefByIdempotentKey(ctx, input.IdempotentKey); lookupErr == nil {
				return existing, false, nil
			}
		}
		s.LogError(ctx, err, "Failed to create draft entry")
		return 0, false, err
	}

	s.LogInfo(ctx, "Draft entry created", slog.Int64("ref", ref), slog.Int("lines", len(lines)))
	return ref, true, nil
}

// UpdateJournalEntry modifies a draft in place. Posted entries are immutable
// and updating one is a conflict. A non-nil Lines replaces the whole line set.
func (s *journalService) UpdateJournalEntry(ctx context.Context, ref int64, input dto.UpdateEntryInput) error {
	entry, err := s.journalRepo.FindEntryByRef(ctx, ref)
	if err != nil {
		return err
	}
	if entry.IsPosted() {
		return fmt.Errorf("%w: journal entry %d is posted and cannot be updated", apperrors.ErrConflict, ref)
	}

	replaceLines := false
	if input.EntryTime != nil {
		entry.EntryTime = *input.EntryTime
	}
	if input.Note != nil {
		entry.Note = *input.Note
	}
	if input.IdempotentKey != nil {
		entry.IdempotentKey = *input.IdempotentKey
	}
	if input.Lines != nil {
		lines, err := buildEntryLines(*input.Lines)
		if err != nil {
			return err
		}
		for i := range lines {
			lines[i].EntryRef = ref
		}
		entry.Lines = lines
		replaceLines = true
	}
	entry.UpdatedAt = time.Now().UTC()

	if err := s.journalRepo.UpdateDraftEntry(ctx, *entry, replaceLines); err != nil {
		s.LogError(ctx, err, "Failed to update draft entry", slog.Int64("ref", ref))
		return err
	}

	s.LogInfo(ctx, "Draft entry updated", slog.Int64("ref", ref), slog.Bool("lines_replaced", replaceLines))
	return nil
}

// PostJournalEntry finalizes a draft: the repository validates balance, locks
// the touched accounts, applies the balance deltas and stamps the post time in
// one transaction. Posting a posted entry is a conflict.
func (s *journalService) PostJournalEntry(ctx context.Context, ref int64, postTime time.Time) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.PostEntry(ctx, ref, postTime)
	if err != nil {
		if !apperrors.IsRecoverable(err) {
			s.LogError(ctx, err, "Failed to post journal entry", slog.Int64("ref", ref))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry posted", slog.Int64("ref", ref), slog.Time("post_time", postTime))
	return entry, nil
}

// DeleteJournalEntryDrafts removes draft entries and returns the refs that
// were actually deleted. Posted entries and unknown refs are silently skipped.
func (s *journalService) DeleteJournalEntryDrafts(ctx context.Context, refs []int64) ([]int64, error) {
	if len(refs) == 0 {
		return []int64{}, nil
	}
	deleted, err := s.journalRepo.DeleteDraftEntries(ctx, refs)
	if err != nil {
		s.LogError(ctx, err, "Failed to delete draft entries")
		return nil, err
	}
	if deleted == nil {
		deleted = []int64{}
	}
	s.LogInfo(ctx, "Draft entries deleted", slog.Int("requested", len(refs)), slog.Int("deleted", len(deleted)))
	return deleted, nil
}

// ReverseJournalEntry drafts a mirror image of a posted entry, with debits and
// credits swapped, and links the two entries. The reversal is NOT posted
// automatically. Reversing a draft or an already-reversed entry is a conflict.
func (s *journalService) ReverseJournalEntry(ctx context.Context, input dto.ReverseEntryInput) (int64, bool, error) {
	if input.ReversalTime.IsZero() || input.ReversalTime.Unix() <= 0 {
		return 0, false, fmt.Errorf("%w: reversal time must be a valid, positive timestamp", apperrors.ErrValidation)
	}

	original, err := s.journalRepo.FindEntryByRef(ctx, input.Ref)
	if err != nil {
		return 0, false, err
	}
	if !original.IsPosted() {
		return 0, false, fmt.Errorf("%w: journal entry %d is a draft and cannot be reversed", apperrors.ErrConflict, input.Ref)
	}
	if original.ReversedByRef != nil {
		return 0, false, fmt.Errorf("%w: journal entry %d is already reversed by entry %d", apperrors.ErrConflict, input.Ref, *original.ReversedByRef)
	}

	if input.IdempotentKey != "" {
		ref, err := s.journalRepo.FindEntryRefByIdempotentKey(ctx, input.IdempotentKey)
		if err == nil {
			return ref, false, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return 0, false, err
		}
	}

	note := input.Note
	if note == "" {
		note = fmt.Sprintf("Reversal of journal entry %d", input.Ref)
	}

	now := time.Now().UTC()
	originalRef := input.Ref
	reversal := domain.JournalEntry{
		EntryTime:     input.ReversalTime,
		Note:          note,
		ReversalOfRef: &originalRef,
		IdempotentKey: input.IdempotentKey,
		CreatedAt:     now,
		UpdatedAt:     now,
		Lines:         accounting.ReverseLines(original.Lines),
	}

	reversalRef, err := s.journalRepo.SaveReversal(ctx, input.Ref, reversal)
	if err != nil {
		if input.IdempotentKey != "" && errors.Is(err, apperrors.ErrDuplicate) {
			if existing, lookupErr := s.journalRepo.FindEntryRefByIdempotentKey(ctx, input.IdempotentKey); lookupErr == nil {
				return existing, false, nil
			}
		}
		s.LogError(ctx, err, "Failed to save reversal entry", slog.Int64("ref", input.Ref))
		return 0, false, err
	}

	s.LogInfo(ctx, "Reversal entry drafted", slog.Int64("ref", input.Ref), slog.Int64("reversal_ref", reversalRef))
	return reversalRef, true, nil
}

// GetJournalEntry returns an entry with its lines.
func (s *journalService) GetJournalEntry(ctx context.Context, ref int64) (*domain.JournalEntry, error) {
	return s.journalRepo.FindEntryByRef(ctx, ref)
}

// GetEntryRefByIdempotentKey looks up the entry recorded under a key.
func (s *journalService) GetEntryRefByIdempotentKey(ctx context.Context, key string) (int64, error) {
	if key == "" {
		return 0, fmt.Errorf("%w: idempotent key must not be empty", apperrors.ErrValidation)
	}
	return s.journalRepo.FindEntryRefByIdempotentKey(ctx, key)
}
