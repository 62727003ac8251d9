package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/invoice_analytics/internal/core/domain"
)

// InvoiceReader defines read operations for invoice data
type InvoiceReader interface {
	// FindInvoiceByID returns the invoice, including soft-deleted ones.
	FindInvoiceByID(ctx context.Context, workplaceID, invoiceID string) (*domain.Invoice, error)

	// ListInvoices returns non-deleted invoices matching filter, oldest first.
	ListInvoices(ctx context.Context, filter domain.InvoiceFilter, page domain.Page) ([]domain.Invoice, error)

	// ListAllInvoices returns every non-deleted invoice matching filter, unpaged.
	ListAllInvoices(ctx context.Context, filter domain.InvoiceFilter) ([]domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoice data
type InvoiceWriter interface {
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error
	UpdateInvoice(ctx context.Context, invoice domain.Invoice) error
	SoftDeleteInvoice(ctx context.Context, workplaceID, invoiceID string, deletedAt time.Time, deletedBy string) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
