package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerline/ledgerline/internal/apperrors"
	"github.com/ledgerline/ledgerline/internal/core/domain"
	portsrepo "github.com/ledgerline/ledgerline/internal/core/ports/repositories"
	"github.com/ledgerline/ledgerline/internal/utils/accounting"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepository {
	return &PgxJournalRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepository
var _ portsrepo.JournalRepository = (*PgxJournalRepository)(nil)

// nullableKey maps an empty idempotent key to NULL so the unique index only
// applies to real keys.
func nullableKey(key string) *string {
	if key == "" {
		return nil
	}
	return &key
}

const lineInsertQuery = `
	INSERT INTO journal_entry_lines (entry_ref, line_number, account_code, debit, credit)
	VALUES ($1, $2, $3, $4, $5);
`

func queueLineInserts(batch *pgx.Batch, ref int64, lines []domain.JournalEntryLine) {
	for _, line := range lines {
		batch.Queue(lineInsertQuery, ref, line.LineNumber, line.AccountCode, line.Debit, line.Credit)
	}
}

func mapLineInsertError(err error) error {
	if isPgErrorCode(err, pgForeignKeyViolation) {
		return fmt.Errorf("%w: line references an unknown account", apperrors.ErrValidation)
	}
	return err
}

// CreateDraftEntry inserts an entry header plus its lines in one transaction
// and returns the assigned ref.
func (r *PgxJournalRepository) CreateDraftEntry(ctx context.Context, entry domain.JournalEntry) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	headerQuery := `
		INSERT INTO journal_entries (entry_time, note, post_time, reversal_of_ref, reversed_by_ref, idempotent_key, created_at, updated_at)
		VALUES ($1, $2, NULL, $3, NULL, $4, $5, $6)
		RETURNING ref;
	`
	var ref int64
	err = tx.QueryRow(ctx, headerQuery,
		entry.EntryTime,
		entry.Note,
		entry.ReversalOfRef,
		nullableKey(entry.IdempotentKey),
		entry.CreatedAt,
		entry.UpdatedAt,
	).Scan(&ref)
	if err != nil {
		if isPgErrorCode(err, pgUniqueViolation) {
			return 0, fmt.Errorf("%w: idempotent key %q already recorded", apperrors.ErrDuplicate, entry.IdempotentKey)
		}
		return 0, fmt.Errorf("failed to insert journal entry: %w", err)
	}

	if len(entry.Lines) > 0 {
		batch := &pgx.Batch{}
		queueLineInserts(batch, ref, entry.Lines)
		br := tx.SendBatch(ctx, batch)
		for range entry.Lines {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return 0, mapLineInsertError(err)
			}
		}
		if err := br.Close(); err != nil {
			return 0, fmt.Errorf("failed to insert journal entry lines: %w", err)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return ref, nil
}

const entryColumns = `ref, entry_time, note, post_time, reversal_of_ref, reversed_by_ref, idempotent_key, created_at, updated_at`

func scanEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var e domain.JournalEntry
	var note, key *string
	err := row.Scan(
		&e.Ref,
		&e.EntryTime,
		&note,
		&e.PostTime,
		&e.ReversalOfRef,
		&e.ReversedByRef,
		&key,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if note != nil {
		e.Note = *note
	}
	if key != nil {
		e.IdempotentKey = *key
	}
	return &e, nil
}

func (r *PgxJournalRepository) findLines(ctx context.Context, q interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}, ref int64) ([]domain.JournalEntryLine, error) {
	query := `
		SELECT entry_ref, line_number, account_code, debit, credit
		FROM journal_entry_lines
		WHERE entry_ref = $1
		ORDER BY line_number;
	`
	rows, err := q.Query(ctx, query, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines of entry %d: %w", ref, err)
	}
	defer rows.Close()

	var lines []domain.JournalEntryLine
	for rows.Next() {
		var l domain.JournalEntryLine
		if err := rows.Scan(&l.EntryRef, &l.LineNumber, &l.AccountCode, &l.Debit, &l.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan line of entry %d: %w", ref, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lines of entry %d: %w", ref, err)
	}
	return lines, nil
}

// FindEntryByRef retrieves an entry header with its lines.
func (r *PgxJournalRepository) FindEntryByRef(ctx context.Context, ref int64) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE ref = $1`
	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, ref))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: journal entry %d", apperrors.ErrNotFound, ref)
		}
		return nil, fmt.Errorf("failed to find journal entry %d: %w", ref, err)
	}

	lines, err := r.findLines(ctx, r.Pool, ref)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines
	return entry, nil
}

// FindEntryRefByIdempotentKey returns the ref recorded under a key.
func (r *PgxJournalRepository) FindEntryRefByIdempotentKey(ctx context.Context, key string) (int64, error) {
	query := `SELECT ref FROM journal_entries WHERE idempotent_key = $1`
	var ref int64
	if err := r.Pool.QueryRow(ctx, query, key).Scan(&ref); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%w: no journal entry with idempotent key %q", apperrors.ErrNotFound, key)
		}
		return 0, fmt.Errorf("failed to look up idempotent key: %w", err)
	}
	return ref, nil
}

// UpdateDraftEntry rewrites a draft header and, when replaceLines is set,
// replaces the whole line set. Updating a posted entry is a conflict.
func (r *PgxJournalRepository) UpdateDraftEntry(ctx context.Context, entry domain.JournalEntry, replaceLines bool) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT post_time FROM journal_entries WHERE ref = $1 FOR UPDATE`
	var postTime *time.Time
	if err := tx.QueryRow(ctx, lockQuery, entry.Ref).Scan(&postTime); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: journal entry %d", apperrors.ErrNotFound, entry.Ref)
		}
		return fmt.Errorf("failed to lock journal entry %d: %w", entry.Ref, err)
	}
	if postTime != nil {
		return fmt.Errorf("%w: journal entry %d is posted and cannot be updated", apperrors.ErrConflict, entry.Ref)
	}

	headerQuery := `
		UPDATE journal_entries
		SET entry_time = $2, note = $3, idempotent_key = $4, updated_at = $5
		WHERE ref = $1;
	`
	_, err = tx.Exec(ctx, headerQuery, entry.Ref, entry.EntryTime, entry.Note, nullableKey(entry.IdempotentKey), entry.UpdatedAt)
	if err != nil {
		if isPgErrorCode(err, pgUniqueViolation) {
			return fmt.Errorf("%w: idempotent key %q already recorded", apperrors.ErrDuplicate, entry.IdempotentKey)
		}
		return fmt.Errorf("failed to update journal entry %d: %w", entry.Ref, err)
	}

	if replaceLines {
		if _, err := tx.Exec(ctx, `DELETE FROM journal_entry_lines WHERE entry_ref = $1`, entry.Ref); err != nil {
			return fmt.Errorf("failed to clear lines of entry %d: %w", entry.Ref, err)
		}
		if len(entry.Lines) > 0 {
			batch := &pgx.Batch{}
			queueLineInserts(batch, entry.Ref, entry.Lines)
			br := tx.SendBatch(ctx, batch)
			for range entry.Lines {
				if _, err := br.Exec(); err != nil {
					br.Close()
					return mapLineInsertError(err)
				}
			}
			if err := br.Close(); err != nil {
				return fmt.Errorf("failed to insert lines of entry %d: %w", entry.Ref, err)
			}
		}
	}

	return r.Commit(ctx, tx)
}

// PostEntry finalizes a draft in one transaction: it locks the entry row,
// rejects a double post, validates the balance invariants, locks the touched
// accounts in code order, applies the signed balance deltas and stamps the
// post time.
func (r *PgxJournalRepository) PostEntry(ctx context.Context, ref int64, postTime time.Time) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT ` + entryColumns + ` FROM journal_entries WHERE ref = $1 FOR UPDATE`
	entry, err := scanEntry(tx.QueryRow(ctx, lockQuery, ref))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: journal entry %d", apperrors.ErrNotFound, ref)
		}
		return nil, fmt.Errorf("failed to lock journal entry %d: %w", ref, err)
	}
	if entry.IsPosted() {
		return nil, fmt.Errorf("%w: journal entry %d is already posted", apperrors.ErrConflict, ref)
	}

	lines, err := r.findLines(ctx, tx, ref)
	if err != nil {
		return nil, err
	}
	if err := accounting.ValidateEntryForPosting(lines); err != nil {
		return nil, err
	}

	// Per-account delta, then lock accounts in code order to keep concurrent
	// posts deadlock free.
	linesByAccount := make(map[int64][]domain.JournalEntryLine)
	codes := make([]int64, 0, len(lines))
	seen := make(map[int64]bool)
	for _, line := range lines {
		if !seen[line.AccountCode] {
			seen[line.AccountCode] = true
			codes = append(codes, line.AccountCode)
		}
		linesByAccount[line.AccountCode] = append(linesByAccount[line.AccountCode], line)
	}

	accountQuery := `
		SELECT code, normal_balance, is_active
		FROM accounts
		WHERE code = ANY($1)
		ORDER BY code
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, accountQuery, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts for posting: %w", err)
	}
	normals := make(map[int64]domain.NormalBalance, len(codes))
	for rows.Next() {
		var code int64
		var normal domain.NormalBalance
		var active bool
		if err := rows.Scan(&code, &normal, &active); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan locked account: %w", err)
		}
		if !active {
			rows.Close()
			return nil, fmt.Errorf("%w: account %d is inactive", apperrors.ErrValidation, code)
		}
		normals[code] = normal
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked accounts: %w", err)
	}
	for _, code := range codes {
		if _, ok := normals[code]; !ok {
			return nil, fmt.Errorf("%w: account %d does not exist", apperrors.ErrValidation, code)
		}
	}

	batch := &pgx.Batch{}
	balanceQuery := `UPDATE accounts SET balance = balance + $2, updated_at = $3 WHERE code = $1`
	for _, code := range codes {
		var delta int64
		for _, line := range linesByAccount[code] {
			delta += accounting.SignedDelta(line, normals[code])
		}
		batch.Queue(balanceQuery, code, delta, postTime)
	}
	br := tx.SendBatch(ctx, batch)
	for range codes {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return nil, fmt.Errorf("failed to apply balance delta: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return nil, fmt.Errorf("failed to apply balance deltas: %w", err)
	}

	stampQuery := `UPDATE journal_entries SET post_time = $2, updated_at = $2 WHERE ref = $1`
	if _, err := tx.Exec(ctx, stampQuery, ref, postTime); err != nil {
		return nil, fmt.Errorf("failed to stamp post time on entry %d: %w", ref, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	entry.PostTime = &postTime
	entry.UpdatedAt = postTime
	entry.Lines = lines
	return entry, nil
}

// DeleteDraftEntries removes the given drafts (lines first) and returns the
// refs actually deleted. Posted and missing refs are skipped.
func (r *PgxJournalRepository) DeleteDraftEntries(ctx context.Context, refs []int64) ([]int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	lineQuery := `
		DELETE FROM journal_entry_lines
		WHERE entry_ref = ANY($1)
		  AND entry_ref IN (SELECT ref FROM journal_entries WHERE post_time IS NULL);
	`
	if _, err := tx.Exec(ctx, lineQuery, refs); err != nil {
		return nil, fmt.Errorf("failed to delete draft lines: %w", err)
	}

	headerQuery := `
		DELETE FROM journal_entries
		WHERE ref = ANY($1) AND post_time IS NULL
		RETURNING ref;
	`
	rows, err := tx.Query(ctx, headerQuery, refs)
	if err != nil {
		return nil, fmt.Errorf("failed to delete draft entries: %w", err)
	}
	var deleted []int64
	for rows.Next() {
		var ref int64
		if err := rows.Scan(&ref); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan deleted ref: %w", err)
		}
		deleted = append(deleted, ref)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deleted refs: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return deleted, nil
}

// SaveReversal inserts the reversal draft and links it to the original entry
// in one transaction. The original must still be posted and unreversed when
// the link is written.
func (r *PgxJournalRepository) SaveReversal(ctx context.Context, originalRef int64, reversal domain.JournalEntry) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	headerQuery := `
		INSERT INTO journal_entries (entry_time, note, post_time, reversal_of_ref, reversed_by_ref, idempotent_key, created_at, updated_at)
		VALUES ($1, $2, NULL, $3, NULL, $4, $5, $6)
		RETURNING ref;
	`
	var reversalRef int64
	err = tx.QueryRow(ctx, headerQuery,
		reversal.EntryTime,
		reversal.Note,
		originalRef,
		nullableKey(reversal.IdempotentKey),
		reversal.CreatedAt,
		reversal.UpdatedAt,
	).Scan(&reversalRef)
	if err != nil {
		if isPgErrorCode(err, pgUniqueViolation) {
			return 0, fmt.Errorf("%w: idempotent key %q already recorded", apperrors.ErrDuplicate, reversal.IdempotentKey)
		}
		return 0, fmt.Errorf("failed to insert reversal entry: %w", err)
	}

	if len(reversal.Lines) > 0 {
		batch := &pgx.Batch{}
		queueLineInserts(batch, reversalRef, reversal.Lines)
		br := tx.SendBatch(ctx, batch)
		for range reversal.Lines {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return 0, mapLineInsertError(err)
			}
		}
		if err := br.Close(); err != nil {
			return 0, fmt.Errorf("failed to insert reversal lines: %w", err)
		}
	}

	linkQuery := `
		UPDATE journal_entries
		SET reversed_by_ref = $2, updated_at = $3
		WHERE ref = $1 AND post_time IS NOT NULL AND reversed_by_ref IS NULL;
	`
	tag, err := tx.Exec(ctx, linkQuery, originalRef, reversalRef, reversal.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to link reversal to entry %d: %w", originalRef, err)
	}
	if tag.RowsAffected() == 0 {
		return 0, fmt.Errorf("%w: journal entry %d is not posted or already reversed", apperrors.ErrConflict, originalRef)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return reversalRef, nil
}
