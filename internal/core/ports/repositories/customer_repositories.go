package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/invoice_analytics/internal/core/domain"
)

// CustomerReader defines read operations for customer data
type CustomerReader interface {
	// FindCustomerByID returns the customer, including soft-deleted ones.
	// Returns apperrors.ErrNotFound when no row exists in the workplace.
	FindCustomerByID(ctx context.Context, workplaceID, customerID string) (*domain.Customer, error)

	// ListCustomers returns non-deleted customers ordered by creation time.
	ListCustomers(ctx context.Context, workplaceID string, page domain.Page) ([]domain.Customer, error)

	// FindFirstCustomerByName returns the first non-deleted customer whose name
	// contains namePart, case-insensitively.
	FindFirstCustomerByName(ctx context.Context, workplaceID, namePart string) (*domain.Customer, error)
}

// CustomerWriter defines write operations for customer data
type CustomerWriter interface {
	SaveCustomer(ctx context.Context, customer domain.Customer) error
	UpdateCustomer(ctx context.Context, customer domain.Customer) error

	// SoftDeleteCustomer stamps the customer and all of its non-deleted invoices
	// with deletedAt in a single transaction.
	SoftDeleteCustomer(ctx context.Context, workplaceID, customerID string, deletedAt time.Time, deletedBy string) error
}

// CustomerRepositoryFacade combines all customer-related repository interfaces
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
}
