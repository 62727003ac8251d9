package cache

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/invoice_analytics/internal/apperrors"
	"github.com/SscSPs/invoice_analytics/internal/core/domain"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryBacking struct {
	entries map[string]domain.RateCacheEntry
	reads   int
}

func newMemoryBacking() *memoryBacking {
	return &memoryBacking{entries: map[string]domain.RateCacheEntry{}}
}

func (b *memoryBacking) FindFreshRate(_ context.Context, from, to string, notBefore time.Time) (*domain.RateCacheEntry, error) {
	b.reads++
	e, ok := b.entries[from+to]
	if !ok || e.CreatedAt.Before(notBefore) {
		return nil, apperrors.NewNotFoundError("miss")
	}
	return &e, nil
}

func (b *memoryBacking) UpsertRate(_ context.Context, entry domain.RateCacheEntry) error {
	b.entries[entry.FromCurrency+entry.ToCurrency] = entry
	return nil
}

func setup(t *testing.T) (*miniredis.Miniredis, *RedisRateCache, *memoryBacking, time.Time) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	backing := newMemoryBacking()
	c := NewRedisRateCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}), backing)
	c.Now = func() time.Time { return now }
	return mr, c, backing, now
}

func TestUpsertWritesBothTiersWithRemainingTTL(t *testing.T) {
	mr, c, backing, now := setup(t)
	ctx := context.Background()

	entry := domain.RateCacheEntry{FromCurrency: "EUR", ToCurrency: "USD", Rate: decimal.RequireFromString("1.0842"), CreatedAt: now.Add(-10 * time.Minute)}
	require.NoError(t, c.UpsertRate(ctx, entry))

	assert.Contains(t, backing.entries, "EURUSD")
	assert.True(t, mr.Exists("rate:EUR:USD"))
	assert.Equal(t, 50*time.Minute, mr.TTL("rate:EUR:USD"))

	got, err := c.FindFreshRate(ctx, "EUR", "USD", now.Add(-domain.RateFreshnessWindow))
	require.NoError(t, err)
	assert.True(t, got.Rate.Equal(entry.Rate))
	assert.Equal(t, 0, backing.reads)
}

func TestMissFallsBackAndBackfills(t *testing.T) {
	mr, c, backing, now := setup(t)
	ctx := context.Background()
	backing.entries["GBPUSD"] = domain.RateCacheEntry{FromCurrency: "GBP", ToCurrency: "USD", Rate: decimal.RequireFromString("1.27"), CreatedAt: now}

	got, err := c.FindFreshRate(ctx, "GBP", "USD", now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "1.27", got.Rate.String())
	assert.Equal(t, 1, backing.reads)
	assert.True(t, mr.Exists("rate:GBP:USD"))
}

func TestMissInBothTiersIsNotFound(t *testing.T) {
	_, c, _, now := setup(t)

	_, err := c.FindFreshRate(context.Background(), "JPY", "USD", now.Add(-time.Hour))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRedisDownStillServesFromBacking(t *testing.T) {
	mr, c, backing, now := setup(t)
	ctx := context.Background()
	mr.Close()

	entry := domain.RateCacheEntry{FromCurrency: "EUR", ToCurrency: "USD", Rate: decimal.RequireFromString("1.08"), CreatedAt: now}
	require.NoError(t, c.UpsertRate(ctx, entry))

	got, err := c.FindFreshRate(ctx, "EUR", "USD", now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "1.08", got.Rate.String())
	assert.Equal(t, 1, backing.reads)
}

func TestStaleRedisEntryFallsThrough(t *testing.T) {
	mr, c, backing, now := setup(t)
	ctx := context.Background()
	require.NoError(t, mr.Set("rate:EUR:USD", `{"rate":"1.01","created_at":"`+now.Add(-2*time.Hour).Format(time.RFC3339)+`"}`))
	backing.entries["EURUSD"] = domain.RateCacheEntry{FromCurrency: "EUR", ToCurrency: "USD", Rate: decimal.RequireFromString("1.09"), CreatedAt: now}

	got, err := c.FindFreshRate(ctx, "EUR", "USD", domain.FreshnessCutoff(now))
	require.NoError(t, err)
	assert.Equal(t, "1.09", got.Rate.String())
	assert.Equal(t, 1, backing.reads)
}

func TestExpiredEntryIsNotWrittenToRedis(t *testing.T) {
	mr, c, _, now := setup(t)

	entry := domain.RateCacheEntry{FromCurrency: "EUR", ToCurrency: "USD", Rate: decimal.RequireFromString("1.08"), CreatedAt: now.Add(-61 * time.Minute)}
	require.NoError(t, c.UpsertRate(context.Background(), entry))

	assert.False(t, mr.Exists("rate:EUR:USD"))
}
