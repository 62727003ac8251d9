package services

import (
	"context"

	"github.com/SscSPs/invoice_analytics/internal/core/domain"
	"github.com/SscSPs/invoice_analytics/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoices
type InvoiceReaderSvc interface {
	// GetInvoice fails with apperrors.ErrAlreadyDeleted for soft-deleted invoices.
	GetInvoice(ctx context.Context, workplaceID, invoiceID, userID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, filter domain.InvoiceFilter, page domain.Page, userID string) ([]domain.Invoice, error)
}

// InvoiceWriterSvc defines write operations for invoices
type InvoiceWriterSvc interface {
	CreateInvoice(ctx context.Context, workplaceID string, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error)

	// UpdateInvoice always re-resolves the rate from the resulting currency.
	UpdateInvoice(ctx context.Context, workplaceID, invoiceID string, req dto.UpdateInvoiceRequest, userID string) (*domain.Invoice, error)
	DeleteInvoice(ctx context.Context, workplaceID, invoiceID, userID string) error
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}
