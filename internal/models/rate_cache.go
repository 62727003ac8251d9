package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateCacheEntry is a row of the exchange_rate_cache table.
type RateCacheEntry struct {
	FromCurrency string          `db:"from_currency"`
	ToCurrency   string          `db:"to_currency"`
	Rate         decimal.Decimal `db:"rate"`
	CreatedAt    time.Time       `db:"created_at"`
}
