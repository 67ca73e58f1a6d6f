package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerline/ledgerline/internal/apperrors"
	"github.com/ledgerline/ledgerline/internal/core/domain"
	portsrepo "github.com/ledgerline/ledgerline/internal/core/ports/repositories"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepository {
	return &PgxAccountRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepository
var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

const accountColumns = `code, name, normal_balance, balance, control_account_code, is_active, is_posting_account, created_at, updated_at`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(
		&a.Code,
		&a.Name,
		&a.NormalBalance,
		&a.Balance,
		&a.ControlAccountCode,
		&a.IsActive,
		&a.IsPostingAccount,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (code, name, normal_balance, balance, control_account_code, is_active, is_posting_account, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		account.Code,
		account.Name,
		account.NormalBalance,
		account.Balance,
		account.ControlAccountCode,
		account.IsActive,
		account.IsPostingAccount,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		if isPgErrorCode(err, pgUniqueViolation) {
			return fmt.Errorf("%w: account with code %d or name %q already exists", apperrors.ErrDuplicate, account.Code, account.Name)
		}
		return fmt.Errorf("failed to save account %d: %w", account.Code, err)
	}
	return nil
}

// FindAccountByCode retrieves an account by its code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code int64, includeInactive bool) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = $1`
	if !includeInactive {
		query += ` AND is_active = TRUE`
	}

	account, err := scanAccount(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %d", apperrors.ErrNotFound, code)
		}
		return nil, fmt.Errorf("failed to find account by code %d: %w", code, err)
	}
	return account, nil
}

// FindAccountByName retrieves an active account by its unique name.
func (r *PgxAccountRepository) FindAccountByName(ctx context.Context, name string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE name = $1 AND is_active = TRUE`

	account, err := scanAccount(r.Pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %q", apperrors.ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to find account by name %q: %w", name, err)
	}
	return account, nil
}

// FindAccounts retrieves accounts matching the filter, sorted by code. The
// filter arrays combine with inclusive OR; an empty filter matches everything.
func (r *PgxAccountRepository) FindAccounts(ctx context.Context, filter portsrepo.AccountFilter) ([]domain.Account, error) {
	query := `SELECT DISTINCT a.code, a.name, a.normal_balance, a.balance, a.control_account_code, a.is_active, a.is_posting_account, a.created_at, a.updated_at
		FROM accounts a`

	args := []any{}
	var conditions []string
	if len(filter.Tags) > 0 {
		query += ` LEFT JOIN account_tags t ON t.account_code = a.code`
	}
	if !filter.Empty() {
		var ors []string
		if len(filter.Codes) > 0 {
			args = append(args, filter.Codes)
			ors = append(ors, fmt.Sprintf("a.code = ANY($%d)", len(args)))
		}
		if len(filter.Names) > 0 {
			args = append(args, filter.Names)
			ors = append(ors, fmt.Sprintf("a.name = ANY($%d)", len(args)))
		}
		if len(filter.Tags) > 0 {
			args = append(args, filter.Tags)
			ors = append(ors, fmt.Sprintf("t.tag = ANY($%d)", len(args)))
		}
		if len(filter.ControlAccountCodes) > 0 {
			args = append(args, filter.ControlAccountCodes)
			ors = append(ors, fmt.Sprintf("a.control_account_code = ANY($%d)", len(args)))
		}
		conditions = append(conditions, "("+strings.Join(ors, " OR ")+")")
	}
	if !filter.IncludeInactive {
		conditions = append(conditions, "a.is_active = TRUE")
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY a.code"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// UpdateAccountName renames an account.
func (r *PgxAccountRepository) UpdateAccountName(ctx context.Context, code int64, name string, now time.Time) error {
	query := `UPDATE accounts SET name = $2, updated_at = $3 WHERE code = $1`
	tag, err := r.Pool.Exec(ctx, query, code, name, now)
	if err != nil {
		if isPgErrorCode(err, pgUniqueViolation) {
			return fmt.Errorf("%w: account name %q already in use", apperrors.ErrDuplicate, name)
		}
		return fmt.Errorf("failed to rename account %d: %w", code, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, code)
	}
	return nil
}

// UpdateControlAccount re-parents an account. A nil controlCode detaches it.
func (r *PgxAccountRepository) UpdateControlAccount(ctx context.Context, code int64, controlCode *int64, now time.Time) error {
	query := `UPDATE accounts SET control_account_code = $2, updated_at = $3 WHERE code = $1`
	tag, err := r.Pool.Exec(ctx, query, code, controlCode, now)
	if err != nil {
		if isPgErrorCode(err, pgForeignKeyViolation) {
			return fmt.Errorf("%w: control account does not exist", apperrors.ErrNotFound)
		}
		return fmt.Errorf("failed to set control account of %d: %w", code, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, code)
	}
	return nil
}

// DeactivateAccount soft-deletes an account.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, code int64, now time.Time) error {
	query := `UPDATE accounts SET is_active = FALSE, updated_at = $2 WHERE code = $1 AND is_active = TRUE`
	tag, err := r.Pool.Exec(ctx, query, code, now)
	if err != nil {
		return fmt.Errorf("failed to deactivate account %d: %w", code, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: active account %d", apperrors.ErrNotFound, code)
	}
	return nil
}

// SetAccountTag attaches a tag; re-attaching an existing pair is a no-op.
func (r *PgxAccountRepository) SetAccountTag(ctx context.Context, code int64, tag string) error {
	query := `INSERT INTO account_tags (account_code, tag) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	if _, err := r.Pool.Exec(ctx, query, code, tag); err != nil {
		if isPgErrorCode(err, pgForeignKeyViolation) {
			return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, code)
		}
		return fmt.Errorf("failed to set tag %q on account %d: %w", tag, code, err)
	}
	return nil
}

// UnsetAccountTag removes a tag pair; removing a missing pair is a no-op.
func (r *PgxAccountRepository) UnsetAccountTag(ctx context.Context, code int64, tag string) error {
	query := `DELETE FROM account_tags WHERE account_code = $1 AND tag = $2`
	if _, err := r.Pool.Exec(ctx, query, code, tag); err != nil {
		return fmt.Errorf("failed to unset tag %q on account %d: %w", tag, code, err)
	}
	return nil
}

// FindTagsByAccountCodes returns the tags of each listed account, keyed by
// account code. Accounts without tags are absent from the map.
func (r *PgxAccountRepository) FindTagsByAccountCodes(ctx context.Context, codes []int64) (map[int64][]string, error) {
	result := make(map[int64][]string)
	if len(codes) == 0 {
		return result, nil
	}

	query := `SELECT account_code, tag FROM account_tags WHERE account_code = ANY($1) ORDER BY account_code, tag`
	rows, err := r.Pool.Query(ctx, query, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to query account tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var code int64
		var tag string
		if err := rows.Scan(&code, &tag); err != nil {
			return nil, fmt.Errorf("failed to scan account tag row: %w", err)
		}
		result[code] = append(result[code], tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account tag rows: %w", err)
	}
	return result, nil
}
