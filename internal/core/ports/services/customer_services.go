package services

import (
	"context"

	"github.com/SscSPs/invoice_analytics/internal/core/domain"
	"github.com/SscSPs/invoice_analytics/internal/dto"
)

// CustomerReaderSvc defines read operations for customers
type CustomerReaderSvc interface {
	// GetCustomer fails with apperrors.ErrAlreadyDeleted for soft-deleted customers.
	GetCustomer(ctx context.Context, workplaceID, customerID, userID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, workplaceID string, page domain.Page, userID string) ([]domain.Customer, error)
	FindFirstCustomerByName(ctx context.Context, workplaceID, namePart, userID string) (*domain.Customer, error)
}

// CustomerWriterSvc defines write operations for customers
type CustomerWriterSvc interface {
	CreateCustomer(ctx context.Context, workplaceID string, req dto.CreateCustomerRequest, userID string) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, workplaceID, customerID string, req dto.UpdateCustomerRequest, userID string) (*domain.Customer, error)

	// DeleteCustomer soft-deletes the customer and cascades to its invoices.
	DeleteCustomer(ctx context.Context, workplaceID, customerID, userID string) error
}

// CustomerSvcFacade combines all customer-related service interfaces
type CustomerSvcFacade interface {
	CustomerReaderSvc
	CustomerWriterSvc
}
