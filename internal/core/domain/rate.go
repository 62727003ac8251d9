package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RateFreshnessWindow is how long a cached rate is trusted after it was written.
const RateFreshnessWindow = time.Hour

// RateCacheEntry is a cached quote for one directed currency pair.
type RateCacheEntry struct {
	FromCurrency string          `json:"fromCurrency"`
	ToCurrency   string          `json:"toCurrency"`
	Rate         decimal.Decimal `json:"rate"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// FreshnessCutoff is the oldest CreatedAt still trusted at now.
func FreshnessCutoff(now time.Time) time.Time {
	return now.Add(-RateFreshnessWindow)
}

// FreshSince reports whether the entry was written at or after notBefore.
func (e RateCacheEntry) FreshSince(notBefore time.Time) bool {
	return !e.CreatedAt.Before(notBefore)
}

// IsFresh reports whether the entry is still inside the freshness window at now.
func (e RateCacheEntry) IsFresh(now time.Time) bool {
	return e.FreshSince(FreshnessCutoff(now))
}

// NormalizeCurrency trims and upper-cases a currency code.
func NormalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsCurrencyCodeShape reports whether code looks like a three-letter ISO code.
func IsCurrencyCodeShape(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}
