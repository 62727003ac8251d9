package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/invoice_analytics/internal/core/domain"
)

// RateCacheReader defines read operations for cached exchange rates
type RateCacheReader interface {
	// FindFreshRate returns the newest entry for the directed pair created at or
	// after notBefore. Returns apperrors.ErrNotFound on a miss.
	FindFreshRate(ctx context.Context, fromCurrency, toCurrency string, notBefore time.Time) (*domain.RateCacheEntry, error)
}

// RateCacheWriter defines write operations for cached exchange rates
type RateCacheWriter interface {
	// UpsertRate overwrites the rate and timestamp of the directed pair, creating it if absent.
	UpsertRate(ctx context.Context, entry domain.RateCacheEntry) error
}

// RateCacheRepositoryFacade combines all rate-cache repository interfaces
type RateCacheRepositoryFacade interface {
	RateCacheReader
	RateCacheWriter
}
