package mapping

import (
	"github.com/SscSPs/invoice_analytics/internal/core/domain"
	"github.com/SscSPs/invoice_analytics/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelInvoice converts a domain Invoice to a model Invoice
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:               d.InvoiceID,
		WorkplaceID:             d.WorkplaceID,
		CustomerID:              d.CustomerID,
		Amount:                  d.Amount,
		Currency:                d.Currency,
		DefaultCurrency:         d.DefaultCurrency,
		AmountInDefaultCurrency: toNullDecimal(d.AmountInDefaultCurrency),
		ExchangeRate:            toNullDecimal(d.ExchangeRate),
		DeletedAt:               d.DeletedAt,
		AuditFields:             ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:               m.InvoiceID,
		WorkplaceID:             m.WorkplaceID,
		CustomerID:              m.CustomerID,
		Amount:                  m.Amount,
		Currency:                m.Currency,
		DefaultCurrency:         m.DefaultCurrency,
		AmountInDefaultCurrency: fromNullDecimal(m.AmountInDefaultCurrency),
		ExchangeRate:            fromNullDecimal(m.ExchangeRate),
		AuditFields:             ToDomainAuditFields(m.AuditFields),
		SoftDelete:              domain.SoftDelete{DeletedAt: m.DeletedAt},
	}
}

// ToDomainInvoices converts a slice of model Invoices
func ToDomainInvoices(ms []models.Invoice) []domain.Invoice {
	out := make([]domain.Invoice, len(ms))
	for i, m := range ms {
		out[i] = ToDomainInvoice(m)
	}
	return out
}

func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func fromNullDecimal(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	d := n.Decimal
	return &d
}
