package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/invoice_analytics/internal/apperrors"
	"github.com/SscSPs/invoice_analytics/internal/core/domain"
	"github.com/SscSPs/invoice_analytics/internal/core/ports/providers"
	portsrepo "github.com/SscSPs/invoice_analytics/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_analytics/internal/core/ports/services"
	"github.com/SscSPs/invoice_analytics/internal/platform/metrics"
	"github.com/shopspring/decimal"
)

// exchangeRateService resolves rates through the cache and the pricing provider.
type exchangeRateService struct {
	BaseService
	cache    portsrepo.RateCacheRepositoryFacade
	provider providers.RateProvider
	metrics  *metrics.Metrics
	now      func() time.Time
}

// ExchangeRateOption is a functional option for configuring the exchange rate service
type ExchangeRateOption func(*exchangeRateService)

// WithRateMetrics records lookup sources on m.
func WithRateMetrics(m *metrics.Metrics) ExchangeRateOption {
	return func(s *exchangeRateService) {
		s.metrics = m
	}
}

// WithClock overrides the time source used for cache freshness.
func WithClock(now func() time.Time) ExchangeRateOption {
	return func(s *exchangeRateService) {
		s.now = now
	}
}

// NewExchangeRateService creates the rate resolver and currency catalog.
func NewExchangeRateService(cache portsrepo.RateCacheRepositoryFacade, provider providers.RateProvider, options ...ExchangeRateOption) portssvc.ExchangeRateSvcFacade {
	svc := &exchangeRateService{
		cache:    cache,
		provider: provider,
		now:      time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

var one = decimal.NewFromInt(1)

func (s *exchangeRateService) GetRate(ctx context.Context, fromCurrency, toCurrency string) (decimal.Decimal, error) {
	from := domain.NormalizeCurrency(fromCurrency)
	to := domain.NormalizeCurrency(toCurrency)

	if from == to {
		s.metrics.RateLookup(metrics.SourceIdentity)
		return one, nil
	}
	for _, code := range []string{from, to} {
		if !domain.IsCurrencyCodeShape(code) {
			return decimal.Zero, invalidCurrency(code)
		}
	}

	notBefore := domain.FreshnessCutoff(s.now())

	entry, err := s.cache.FindFreshRate(ctx, from, to, notBefore)
	if err == nil && entry.Rate.IsPositive() {
		s.metrics.RateLookup(metrics.SourceCacheDirect)
		return entry.Rate, nil
	}
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to read rate cache", slog.String("from", from), slog.String("to", to))
		return decimal.Zero, fmt.Errorf("failed to read rate cache: %w", err)
	}

	inverse, err := s.cache.FindFreshRate(ctx, to, from, notBefore)
	if err == nil && inverse.Rate.IsPositive() {
		s.metrics.RateLookup(metrics.SourceCacheInverse)
		return one.Div(inverse.Rate), nil
	}
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to read rate cache", slog.String("from", to), slog.String("to", from))
		return decimal.Zero, fmt.Errorf("failed to read rate cache: %w", err)
	}

	return s.fetchAndCache(ctx, from, to)
}

func (s *exchangeRateService) fetchAndCache(ctx context.Context, from, to string) (decimal.Decimal, error) {
	codes, err := s.provider.SupportedCodes(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load supported currency codes")
		return decimal.Zero, err
	}
	for _, code := range []string{from, to} {
		if _, ok := codes[code]; !ok {
			return decimal.Zero, invalidCurrency(code)
		}
	}

	rate, err := s.provider.PairRate(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch exchange rate", slog.String("from", from), slog.String("to", to))
		return decimal.Zero, err
	}
	s.metrics.RateLookup(metrics.SourceProvider)

	entry := domain.RateCacheEntry{FromCurrency: from, ToCurrency: to, Rate: rate, CreatedAt: s.now()}
	if err := s.cache.UpsertRate(ctx, entry); err != nil {
		// best effort
		s.LogError(ctx, err, "Failed to cache exchange rate", slog.String("from", from), slog.String("to", to))
	}

	s.LogDebug(ctx, "Exchange rate fetched from provider", slog.String("from", from), slog.String("to", to), slog.String("rate", rate.String()))
	return rate, nil
}

func (s *exchangeRateService) SupportedCurrencies(ctx context.Context) (map[string]string, error) {
	codes, err := s.provider.SupportedCodes(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load supported currency codes")
		return nil, err
	}
	return codes, nil
}

func (s *exchangeRateService) ValidateCurrency(ctx context.Context, code string) error {
	code = domain.NormalizeCurrency(code)
	if !domain.IsCurrencyCodeShape(code) {
		return invalidCurrency(code)
	}
	codes, err := s.SupportedCurrencies(ctx)
	if err != nil {
		return err
	}
	if _, ok := codes[code]; !ok {
		return invalidCurrency(code)
	}
	return nil
}

func invalidCurrency(code string) error {
	return apperrors.NewInvalidCurrencyError(fmt.Sprintf("Invalid currency code: %s. Currency is not supported.", code))
}
