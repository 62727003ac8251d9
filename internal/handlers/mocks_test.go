package handlers_test

import (
	"context"
	"errors"

	"github.com/SscSPs/invoice_analytics/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_analytics/internal/core/ports/services"
	"github.com/SscSPs/invoice_analytics/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock ExchangeRateService ---
type MockExchangeRateService struct {
	mock.Mock
}

func (m *MockExchangeRateService) GetRate(ctx context.Context, fromCurrency, toCurrency string) (decimal.Decimal, error) {
	args := m.Called(ctx, fromCurrency, toCurrency)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockExchangeRateService) SupportedCurrencies(ctx context.Context) (map[string]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}
func (m *MockExchangeRateService) ValidateCurrency(ctx context.Context, code string) error {
	return m.Called(ctx, code).Error(0)
}

var _ portssvc.ExchangeRateSvcFacade = (*MockExchangeRateService)(nil)

// --- Mock WorkplaceService ---
type MockWorkplaceService struct {
	mock.Mock
}

func (m *MockWorkplaceService) FindWorkplaceByID(ctx context.Context, workplaceID string) (*domain.Workplace, error) {
	args := m.Called(ctx, workplaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workplace), args.Error(1)
}
func (m *MockWorkplaceService) GetWorkplace(ctx context.Context, workplaceID, userID string) (*domain.Workplace, error) {
	args := m.Called(ctx, workplaceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workplace), args.Error(1)
}
func (m *MockWorkplaceService) ListUserWorkplaces(ctx context.Context, userID string) ([]domain.Workplace, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Workplace), args.Error(1)
}
func (m *MockWorkplaceService) CreateWorkplace(ctx context.Context, name, description, defaultCurrencyCode, creatorUserID string) (*domain.Workplace, error) {
	args := m.Called(ctx, name, description, defaultCurrencyCode, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workplace), args.Error(1)
}
func (m *MockWorkplaceService) AddUserToWorkplace(ctx context.Context, addingUserID, targetUserID, workplaceID string, role domain.UserWorkplaceRole) error {
	return m.Called(ctx, addingUserID, targetUserID, workplaceID, role).Error(0)
}
func (m *MockWorkplaceService) AuthorizeUserAction(ctx context.Context, userID, workplaceID string, requiredRole domain.UserWorkplaceRole) error {
	return m.Called(ctx, userID, workplaceID, requiredRole).Error(0)
}
func (m *MockWorkplaceService) DefaultCurrency(ctx context.Context, workplaceID string) (string, error) {
	args := m.Called(ctx, workplaceID)
	return args.String(0), args.Error(1)
}

var _ portssvc.WorkplaceSvcFacade = (*MockWorkplaceService)(nil)

// --- Mock CustomerService ---
type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) GetCustomer(ctx context.Context, workplaceID, customerID, userID string) (*domain.Customer, error) {
	args := m.Called(ctx, workplaceID, customerID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerService) ListCustomers(ctx context.Context, workplaceID string, page domain.Page, userID string) ([]domain.Customer, error) {
	args := m.Called(ctx, workplaceID, page, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}
func (m *MockCustomerService) FindFirstCustomerByName(ctx context.Context, workplaceID, namePart, userID string) (*domain.Customer, error) {
	args := m.Called(ctx, workplaceID, namePart, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerService) CreateCustomer(ctx context.Context, workplaceID string, req dto.CreateCustomerRequest, userID string) (*domain.Customer, error) {
	args := m.Called(ctx, workplaceID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerService) UpdateCustomer(ctx context.Context, workplaceID, customerID string, req dto.UpdateCustomerRequest, userID string) (*domain.Customer, error) {
	args := m.Called(ctx, workplaceID, customerID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerService) DeleteCustomer(ctx context.Context, workplaceID, customerID, userID string) error {
	return m.Called(ctx, workplaceID, customerID, userID).Error(0)
}

var _ portssvc.CustomerSvcFacade = (*MockCustomerService)(nil)

// --- Mock InvoiceService ---
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) GetInvoice(ctx context.Context, workplaceID, invoiceID, userID string) (*domain.Invoice, error) {
	args := m.Called(ctx, workplaceID, invoiceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceService) ListInvoices(ctx context.Context, filter domain.InvoiceFilter, page domain.Page, userID string) ([]domain.Invoice, error) {
	args := m.Called(ctx, filter, page, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}
func (m *MockInvoiceService) CreateInvoice(ctx context.Context, workplaceID string, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error) {
	args := m.Called(ctx, workplaceID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceService) UpdateInvoice(ctx context.Context, workplaceID, invoiceID string, req dto.UpdateInvoiceRequest, userID string) (*domain.Invoice, error) {
	args := m.Called(ctx, workplaceID, invoiceID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceService) DeleteInvoice(ctx context.Context, workplaceID, invoiceID, userID string) error {
	return m.Called(ctx, workplaceID, invoiceID, userID).Error(0)
}

var _ portssvc.InvoiceSvcFacade = (*MockInvoiceService)(nil)

// --- Mock AnalyticsService ---
type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) TotalRevenue(ctx context.Context, query domain.AnalyticsQuery, userID string) (*domain.RevenueAggregate, error) {
	args := m.Called(ctx, query, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RevenueAggregate), args.Error(1)
}
func (m *MockAnalyticsService) AverageInvoice(ctx context.Context, query domain.AnalyticsQuery, userID string) (*domain.RevenueAggregate, error) {
	args := m.Called(ctx, query, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RevenueAggregate), args.Error(1)
}

var _ portssvc.AnalyticsSvcFacade = (*MockAnalyticsService)(nil)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

var errBoom = errors.New("boom")
