package dto

import (
	"time"

	"github.com/SscSPs/invoice_analytics/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest defines data for creating an invoice.
type CreateInvoiceRequest struct {
	CustomerID string          `json:"customer_id" binding:"required,uuid"`
	Amount     decimal.Decimal `json:"amount"` // must be > 0, checked by the service
	Currency   string          `json:"currency" binding:"required,len=3,alpha"`
}

// UpdateInvoiceRequest defines the mutable fields of an invoice.
type UpdateInvoiceRequest struct {
	Amount   *decimal.Decimal `json:"amount"`
	Currency *string          `json:"currency" binding:"omitempty,len=3,alpha"`
}

// ListInvoicesParams binds invoice listing query parameters.
type ListInvoicesParams struct {
	PageParams
	CustomerID string `form:"customer_id" binding:"omitempty,uuid"`
}

// InvoiceResponse defines data returned for an invoice.
type InvoiceResponse struct {
	ID                      string           `json:"id"`
	CustomerID              string           `json:"customer_id"`
	Amount                  decimal.Decimal  `json:"amount"`
	Currency                string           `json:"currency"`
	DefaultCurrency         string           `json:"default_currency"`
	AmountInDefaultCurrency *decimal.Decimal `json:"amount_in_default_currency"`
	ExchangeRate            *decimal.Decimal `json:"exchange_rate"`
	CreatedAt               time.Time        `json:"created_at"`
	UpdatedAt               time.Time        `json:"updated_at"`
}

// ToInvoiceResponse converts domain.Invoice to DTO.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:                      inv.InvoiceID,
		CustomerID:              inv.CustomerID,
		Amount:                  inv.Amount,
		Currency:                inv.Currency,
		DefaultCurrency:         inv.DefaultCurrency,
		AmountInDefaultCurrency: inv.AmountInDefaultCurrency,
		ExchangeRate:            inv.ExchangeRate,
		CreatedAt:               inv.CreatedAt,
		UpdatedAt:               inv.LastUpdatedAt,
	}
}

// ToInvoiceResponses converts a slice of domain.Invoice to DTOs.
func ToInvoiceResponses(invs []domain.Invoice) []InvoiceResponse {
	list := make([]InvoiceResponse, len(invs))
	for i := range invs {
		list[i] = ToInvoiceResponse(&invs[i])
	}
	return list
}
