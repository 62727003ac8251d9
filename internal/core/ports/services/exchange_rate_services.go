package services

import (
	"context"

	"github.com/shopspring/decimal"
)

// RateResolverSvc resolves the rate for converting one unit of from into to.
type RateResolverSvc interface {
	// GetRate returns 1 for identical codes, a fresh cached rate (direct or
	// inverted) when available, and otherwise a rate fetched from the pricing provider.
	GetRate(ctx context.Context, fromCurrency, toCurrency string) (decimal.Decimal, error)
}

// CurrencyCatalogSvc exposes the pricing provider's supported codes.
type CurrencyCatalogSvc interface {
	// SupportedCurrencies returns code -> display name.
	SupportedCurrencies(ctx context.Context) (map[string]string, error)

	// ValidateCurrency returns apperrors.ErrInvalidCurrency when code is unsupported.
	ValidateCurrency(ctx context.Context, code string) error
}

// ExchangeRateSvcFacade combines rate resolution and currency catalog access
type ExchangeRateSvcFacade interface {
	RateResolverSvc
	CurrencyCatalogSvc
}
