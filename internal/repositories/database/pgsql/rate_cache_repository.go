package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/invoice_analytics/internal/apperrors"
	"github.com/SscSPs/invoice_analytics/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_analytics/internal/core/ports/repositories"
	"github.com/SscSPs/invoice_analytics/internal/models"
	"github.com/SscSPs/invoice_analytics/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxRateCacheRepository is the durable tier of the exchange rate cache.
type PgxRateCacheRepository struct {
	BaseRepository
}

// NewPgxRateCacheRepository creates a new PgxRateCacheRepository.
func NewPgxRateCacheRepository(pool *pgxpool.Pool) *PgxRateCacheRepository {
	return &PgxRateCacheRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.RateCacheRepositoryFacade = (*PgxRateCacheRepository)(nil)

func (r *PgxRateCacheRepository) FindFreshRate(ctx context.Context, fromCurrency, toCurrency string, notBefore time.Time) (*domain.RateCacheEntry, error) {
	var m models.RateCacheEntry
	err := r.Pool.QueryRow(ctx, `
		SELECT from_currency, to_currency, rate, created_at
		FROM exchange_rate_cache
		WHERE from_currency = $1 AND to_currency = $2 AND created_at >= $3
		ORDER BY created_at DESC
		LIMIT 1;`,
		fromCurrency, toCurrency, notBefore,
	).Scan(&m.FromCurrency, &m.ToCurrency, &m.Rate, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no fresh rate for " + fromCurrency + "/" + toCurrency)
		}
		return nil, apperrors.NewAppError(500, "failed to find cached rate", err)
	}

	entry := mapping.ToDomainRateCacheEntry(m)
	return &entry, nil
}

func (r *PgxRateCacheRepository) UpsertRate(ctx context.Context, entry domain.RateCacheEntry) error {
	m := mapping.ToModelRateCacheEntry(entry)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO exchange_rate_cache (from_currency, to_currency, rate, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (from_currency, to_currency)
		DO UPDATE SET rate = EXCLUDED.rate, created_at = EXCLUDED.created_at;`,
		m.FromCurrency, m.ToCurrency, m.Rate, m.CreatedAt,
	)
	if err != nil {
		return mapWriteError(err, "failed to upsert cached rate "+entry.FromCurrency+"/"+entry.ToCurrency)
	}
	return nil
}
