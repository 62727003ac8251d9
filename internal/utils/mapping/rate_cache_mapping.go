package mapping

import (
	"github.com/SscSPs/invoice_analytics/internal/core/domain"
	"github.com/SscSPs/invoice_analytics/internal/models"
)

// ToModelRateCacheEntry converts a domain RateCacheEntry to a model RateCacheEntry
func ToModelRateCacheEntry(d domain.RateCacheEntry) models.RateCacheEntry {
	return models.RateCacheEntry{
		FromCurrency: d.FromCurrency,
		ToCurrency:   d.ToCurrency,
		Rate:         d.Rate,
		CreatedAt:    d.CreatedAt,
	}
}

// ToDomainRateCacheEntry converts a model RateCacheEntry to a domain RateCacheEntry
func ToDomainRateCacheEntry(m models.RateCacheEntry) domain.RateCacheEntry {
	return domain.RateCacheEntry{
		FromCurrency: m.FromCurrency,
		ToCurrency:   m.ToCurrency,
		Rate:         m.Rate,
		CreatedAt:    m.CreatedAt,
	}
}
