package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/ledgerline/ledgerline/internal/core/ports/repositories"
)

// NewRepositoryContainer wires every pgx-backed repository over one pool.
func NewRepositoryContainer(dbPool *pgxpool.Pool) portsrepo.Container {
	return portsrepo.Container{
		Account:   newPgxAccountRepository(dbPool),
		Journal:   newPgxJournalRepository(dbPool),
		Reporting: newPgxReportingRepository(dbPool),
		RawQuery:  newPgxRawQueryRepository(dbPool),
	}
}
