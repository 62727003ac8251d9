package pgsql

import (
	portsrepo "github.com/SscSPs/invoice_analytics/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every Postgres repository. rateCache, when non-nil,
// replaces the plain Postgres rate cache (e.g. a Redis tier in front of it).
func NewRepositoryProvider(dbPool *pgxpool.Pool, rateCache portsrepo.RateCacheRepositoryFacade) portsrepo.RepositoryProvider {
	if rateCache == nil {
		rateCache = NewPgxRateCacheRepository(dbPool)
	}
	return portsrepo.RepositoryProvider{
		CustomerRepo:  newPgxCustomerRepository(dbPool),
		InvoiceRepo:   newPgxInvoiceRepository(dbPool),
		RateCacheRepo: rateCache,
		WorkplaceRepo: newPgxWorkplaceRepository(dbPool),
	}
}
