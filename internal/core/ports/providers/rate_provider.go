package providers

import (
	"context"

	"github.com/shopspring/decimal"
)

// RateProvider is the remote pricing source behind the rate cache.
//
// Implementations map failures onto apperrors.ErrUpstreamTimeout,
// apperrors.ErrUpstreamUnavailable and apperrors.ErrUpstreamBusiness.
type RateProvider interface {
	// SupportedCodes returns currency code -> display name.
	SupportedCodes(ctx context.Context) (map[string]string, error)

	// PairRate returns the price of one unit of from in to.
	PairRate(ctx context.Context, fromCurrency, toCurrency string) (decimal.Decimal, error)
}
