package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AnalyticsQuery selects the invoices an aggregate runs over.
type AnalyticsQuery struct {
	WorkplaceID    string
	TargetCurrency string // empty means the effective default currency
	CustomerID     *string
	StartDate      *time.Time
	EndDate        *time.Time
}

// RevenueAggregate is the result of an analytics aggregate.
type RevenueAggregate struct {
	Value        decimal.Decimal // total or average, rounded to MoneyScale
	Currency     string
	InvoiceCount int
	CustomerID   *string
	StartDate    *time.Time
	EndDate      *time.Time
}
