package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerline/ledgerline/internal/apperrors"
	portsrepo "github.com/ledgerline/ledgerline/internal/core/ports/repositories"
	"github.com/ledgerline/ledgerline/internal/dto"
)

type PgxRawQueryRepository struct {
	BaseRepository
}

// newPgxRawQueryRepository creates the raw SQL passthrough.
func newPgxRawQueryRepository(pool *pgxpool.Pool) portsrepo.RawQueryExecutor {
	return &PgxRawQueryRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxRawQueryRepository implements portsrepo.RawQueryExecutor
var _ portsrepo.RawQueryExecutor = (*PgxRawQueryRepository)(nil)

// ExecuteRawQuery runs one statement with positional parameters and returns
// whatever came back: column names and rows for reads, rows affected for
// writes. SQL errors map to ErrValidation so callers see them as recoverable.
func (r *PgxRawQueryRepository) ExecuteRawQuery(ctx context.Context, query string, params []any) (*dto.QueryResult, error) {
	rows, err := r.Pool.Query(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = string(f.Name)
	}

	result := &dto.QueryResult{Columns: columns, Rows: [][]any{}}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("failed to read row values: %w", err)
		}
		result.Rows = append(result.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	result.RowsAffected = rows.CommandTag().RowsAffected()
	return result, nil
}
