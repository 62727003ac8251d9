package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is a row of the invoices table.
type Invoice struct {
	InvoiceID               string              `db:"invoice_id"`
	WorkplaceID             string              `db:"workplace_id"`
	CustomerID              string              `db:"customer_id"`
	Amount                  decimal.Decimal     `db:"amount"`
	Currency                string              `db:"currency"`
	DefaultCurrency         string              `db:"default_currency"`
	AmountInDefaultCurrency decimal.NullDecimal `db:"amount_in_default_currency"`
	ExchangeRate            decimal.NullDecimal `db:"exchange_rate"`
	DeletedAt               *time.Time          `db:"deleted_at"`
	AuditFields
}
