// Package cache holds the Redis tier in front of the durable rate cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/invoice_analytics/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_analytics/internal/core/ports/repositories"
	"github.com/SscSPs/invoice_analytics/internal/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const keyPrefix = "rate:"

// RedisRateCache serves fresh rates from Redis and falls through to Backing.
// Redis failures never fail a lookup; they are logged and the backing tier answers.
type RedisRateCache struct {
	Client  *redis.Client
	Backing portsrepo.RateCacheRepositoryFacade
	Now     func() time.Time
}

var _ portsrepo.RateCacheRepositoryFacade = (*RedisRateCache)(nil)

// NewRedisRateCache wraps backing with a Redis tier.
func NewRedisRateCache(client *redis.Client, backing portsrepo.RateCacheRepositoryFacade) *RedisRateCache {
	return &RedisRateCache{Client: client, Backing: backing, Now: time.Now}
}

type redisEntry struct {
	Rate      decimal.Decimal `json:"rate"`
	CreatedAt time.Time       `json:"created_at"`
}

func rateKey(fromCurrency, toCurrency string) string {
	return keyPrefix + fromCurrency + ":" + toCurrency
}

func (c *RedisRateCache) FindFreshRate(ctx context.Context, fromCurrency, toCurrency string, notBefore time.Time) (*domain.RateCacheEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	key := rateKey(fromCurrency, toCurrency)

	raw, err := c.Client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var e redisEntry
		if jsonErr := json.Unmarshal(raw, &e); jsonErr != nil {
			logger.WarnContext(ctx, "Discarding unreadable cached rate", slog.String("key", key), slog.String("error", jsonErr.Error()))
		} else if entry := (domain.RateCacheEntry{FromCurrency: fromCurrency, ToCurrency: toCurrency, Rate: e.Rate, CreatedAt: e.CreatedAt}); entry.FreshSince(notBefore) {
			return &entry, nil
		}
	case !errors.Is(err, redis.Nil):
		logger.WarnContext(ctx, "Redis rate lookup failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	entry, err := c.Backing.FindFreshRate(ctx, fromCurrency, toCurrency, notBefore)
	if err != nil {
		return nil, err
	}
	c.store(ctx, *entry)
	return entry, nil
}

func (c *RedisRateCache) UpsertRate(ctx context.Context, entry domain.RateCacheEntry) error {
	if err := c.Backing.UpsertRate(ctx, entry); err != nil {
		return err
	}
	c.store(ctx, entry)
	return nil
}

// store writes entry with a TTL of whatever is left of its freshness window.
func (c *RedisRateCache) store(ctx context.Context, entry domain.RateCacheEntry) {
	now := c.Now()
	ttl := domain.RateFreshnessWindow - now.Sub(entry.CreatedAt)
	if !entry.IsFresh(now) || ttl <= 0 {
		return
	}
	raw, err := json.Marshal(redisEntry{Rate: entry.Rate, CreatedAt: entry.CreatedAt})
	if err != nil {
		return
	}
	key := rateKey(entry.FromCurrency, entry.ToCurrency)
	if err := c.Client.Set(ctx, key, raw, ttl).Err(); err != nil {
		middleware.GetLoggerFromCtx(ctx).WarnContext(ctx, "Redis rate write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}
