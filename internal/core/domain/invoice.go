package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is an amount billed to a customer, stamped at write time with the
// rate into the default currency that was in effect.
type Invoice struct {
	InvoiceID       string          `json:"invoiceID"`
	WorkplaceID     string          `json:"workplaceID"`
	CustomerID      string          `json:"customerID"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	DefaultCurrency string          `json:"defaultCurrency"`
	// AmountInDefaultCurrency and ExchangeRate are either both set or both nil.
	AmountInDefaultCurrency *decimal.Decimal `json:"amountInDefaultCurrency"`
	ExchangeRate            *decimal.Decimal `json:"exchangeRate"`
	AuditFields
	SoftDelete
}

// ApplyRate stamps the invoice with rate and the converted amount derived from it.
func (i *Invoice) ApplyRate(rate decimal.Decimal) {
	converted := ConvertAmount(i.Amount, rate)
	r := rate
	i.ExchangeRate = &r
	i.AmountInDefaultCurrency = &converted
}

// ConvertAmount multiplies amount by rate and rounds to two decimal places.
func ConvertAmount(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Round(MoneyScale)
}

// MoneyScale is the number of decimal places kept on monetary results.
const MoneyScale = 2

// InvoiceFilter narrows invoice listings and analytics selections.
type InvoiceFilter struct {
	WorkplaceID string
	CustomerID  *string
	Start       *time.Time // inclusive
	End         *time.Time // inclusive
}
