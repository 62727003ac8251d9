package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/invoice_analytics/internal/apperrors"
	"github.com/SscSPs/invoice_analytics/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_analytics/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_analytics/internal/core/ports/services"
	"github.com/SscSPs/invoice_analytics/internal/dto"
	"github.com/google/uuid"
)

type customerService struct {
	BaseService
	customerRepo portsrepo.CustomerRepositoryFacade
}

// NewCustomerService creates a new customer service.
func NewCustomerService(repo portsrepo.CustomerRepositoryFacade, authorizer portssvc.WorkplaceAuthorizerSvc) portssvc.CustomerSvcFacade {
	return &customerService{
		BaseService:  BaseService{WorkplaceAuthorizer: authorizer},
		customerRepo: repo,
	}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

func (s *customerService) GetCustomer(ctx context.Context, workplaceID, customerID, userID string) (*domain.Customer, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.activeCustomer(ctx, workplaceID, customerID)
}

// activeCustomer loads a customer and rejects soft-deleted ones.
func (s *customerService) activeCustomer(ctx context.Context, workplaceID, customerID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, workplaceID, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("Customer with id %s not found", customerID))
		}
		s.LogError(ctx, err, "Failed to find customer", slog.String("customer_id", customerID))
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if customer.IsDeleted() {
		return nil, apperrors.NewAlreadyDeletedError(fmt.Sprintf("Customer with id %s already deleted", customerID))
	}
	return customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context, workplaceID string, page domain.Page, userID string) ([]domain.Customer, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	customers, err := s.customerRepo.ListCustomers(ctx, workplaceID, page.Normalize())
	if err != nil {
		s.LogError(ctx, err, "Failed to list customers", slog.String("workplace_id", workplaceID))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	if customers == nil {
		customers = []domain.Customer{}
	}
	return customers, nil
}

func (s *customerService) FindFirstCustomerByName(ctx context.Context, workplaceID, namePart, userID string) (*domain.Customer, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.customerRepo.FindFirstCustomerByName(ctx, workplaceID, strings.TrimSpace(namePart))
}

func (s *customerService) CreateCustomer(ctx context.Context, workplaceID string, req dto.CreateCustomerRequest, userID string) (*domain.Customer, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("customer name cannot be empty")
	}

	now := time.Now().UTC()
	customer := domain.Customer{
		CustomerID:  uuid.NewString(),
		WorkplaceID: workplaceID,
		Name:        name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		s.LogError(ctx, err, "Failed to save customer", slog.String("workplace_id", workplaceID))
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	s.LogInfo(ctx, "Customer created", slog.String("customer_id", customer.CustomerID), slog.String("workplace_id", workplaceID))
	return &customer, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, workplaceID, customerID string, req dto.UpdateCustomerRequest, userID string) (*domain.Customer, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}

	customer, err := s.activeCustomer(ctx, workplaceID, customerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("customer name cannot be empty")
		}
		customer.Name = name
	}
	customer.LastUpdatedAt = time.Now().UTC()
	customer.LastUpdatedBy = userID

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		s.LogError(ctx, err, "Failed to update customer", slog.String("customer_id", customerID))
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return customer, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, workplaceID, customerID, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return err
	}

	if _, err := s.activeCustomer(ctx, workplaceID, customerID); err != nil {
		return err
	}

	if err := s.customerRepo.SoftDeleteCustomer(ctx, workplaceID, customerID, time.Now().UTC(), userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrAlreadyDeleted) {
			return err
		}
		s.LogError(ctx, err, "Failed to delete customer", slog.String("customer_id", customerID))
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	s.LogInfo(ctx, "Customer deleted", slog.String("customer_id", customerID), slog.String("workplace_id", workplaceID))
	return nil
}
