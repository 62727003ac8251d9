package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/invoice_analytics/internal/apperrors"
	"github.com/SscSPs/invoice_analytics/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_analytics/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_analytics/internal/core/ports/services"
	"github.com/SscSPs/invoice_analytics/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type invoiceService struct {
	BaseService
	invoiceRepo  portsrepo.InvoiceRepositoryFacade
	customerRepo portsrepo.CustomerReader
	rates        portssvc.RateResolverSvc
	workplaces   portssvc.WorkplaceCurrencySvc
}

// NewInvoiceService creates a new invoice service. The rate resolver stamps
// every write with the rate into the workplace default currency.
func NewInvoiceService(
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	customerRepo portsrepo.CustomerReader,
	rates portssvc.RateResolverSvc,
	workplaces portssvc.WorkplaceCurrencySvc,
	authorizer portssvc.WorkplaceAuthorizerSvc,
) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		BaseService:  BaseService{WorkplaceAuthorizer: authorizer},
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		rates:        rates,
		workplaces:   workplaces,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

func (s *invoiceService) GetInvoice(ctx context.Context, workplaceID, invoiceID, userID string) (*domain.Invoice, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.activeInvoice(ctx, workplaceID, invoiceID, "is deleted")
}

func (s *invoiceService) activeInvoice(ctx context.Context, workplaceID, invoiceID, deletedMsg string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, workplaceID, invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("Invoice with id %s not found", invoiceID))
		}
		s.LogError(ctx, err, "Failed to find invoice", slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	if invoice.IsDeleted() {
		return nil, apperrors.NewAlreadyDeletedError(fmt.Sprintf("Invoice with id %s %s", invoiceID, deletedMsg))
	}
	return invoice, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, filter domain.InvoiceFilter, page domain.Page, userID string) ([]domain.Invoice, error) {
	if err := s.AuthorizeUser(ctx, userID, filter.WorkplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	invoices, err := s.invoiceRepo.ListInvoices(ctx, filter, page.Normalize())
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices", slog.String("workplace_id", filter.WorkplaceID))
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	if invoices == nil {
		invoices = []domain.Invoice{}
	}
	return invoices, nil
}

func (s *invoiceService) CreateInvoice(ctx context.Context, workplaceID string, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}
	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}
	currency := domain.NormalizeCurrency(req.Currency)

	customer, err := s.customerRepo.FindCustomerByID(ctx, workplaceID, req.CustomerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("Customer with id %s not found", req.CustomerID))
		}
		s.LogError(ctx, err, "Failed to find customer for invoice", slog.String("customer_id", req.CustomerID))
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if customer.IsDeleted() {
		return nil, apperrors.NewAlreadyDeletedError(fmt.Sprintf("Customer with id %s is deleted", req.CustomerID))
	}

	defaultCurrency, err := s.workplaces.DefaultCurrency(ctx, workplaceID)
	if err != nil {
		return nil, err
	}
	rate, err := s.rates.GetRate(ctx, currency, defaultCurrency)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	invoice := domain.Invoice{
		InvoiceID:       uuid.NewString(),
		WorkplaceID:     workplaceID,
		CustomerID:      customer.CustomerID,
		Amount:          req.Amount,
		Currency:        currency,
		DefaultCurrency: defaultCurrency,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	invoice.ApplyRate(rate)

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		s.LogError(ctx, err, "Failed to save invoice", slog.String("customer_id", customer.CustomerID))
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	s.LogInfo(ctx, "Invoice created",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("currency", currency),
		slog.String("default_currency", defaultCurrency),
		slog.String("rate", rate.String()))
	return &invoice, nil
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, workplaceID, invoiceID string, req dto.UpdateInvoiceRequest, userID string) (*domain.Invoice, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}

	invoice, err := s.activeInvoice(ctx, workplaceID, invoiceID, "is deleted")
	if err != nil {
		return nil, err
	}

	if req.Amount != nil {
		if err := validateAmount(*req.Amount); err != nil {
			return nil, err
		}
		invoice.Amount = *req.Amount
	}
	if req.Currency != nil {
		invoice.Currency = domain.NormalizeCurrency(*req.Currency)
	}

	// Always re-resolved, even when neither field changed.
	rate, err := s.rates.GetRate(ctx, invoice.Currency, invoice.DefaultCurrency)
	if err != nil {
		return nil, err
	}
	invoice.ApplyRate(rate)
	invoice.LastUpdatedAt = time.Now().UTC()
	invoice.LastUpdatedBy = userID

	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice); err != nil {
		s.LogError(ctx, err, "Failed to update invoice", slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}
	return invoice, nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, workplaceID, invoiceID, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return err
	}

	if _, err := s.activeInvoice(ctx, workplaceID, invoiceID, "already deleted"); err != nil {
		return err
	}

	if err := s.invoiceRepo.SoftDeleteInvoice(ctx, workplaceID, invoiceID, time.Now().UTC(), userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrAlreadyDeleted) {
			return err
		}
		s.LogError(ctx, err, "Failed to delete invoice", slog.String("invoice_id", invoiceID))
		return fmt.Errorf("failed to delete invoice: %w", err)
	}

	s.LogInfo(ctx, "Invoice deleted", slog.String("invoice_id", invoiceID))
	return nil
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperrors.NewValidationError("amount must be greater than 0")
	}
	return nil
}
