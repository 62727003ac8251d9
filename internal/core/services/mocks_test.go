package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/invoice_analytics/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Repositories ---

type MockRateCache struct {
	mock.Mock
}

func (m *MockRateCache) FindFreshRate(ctx context.Context, from, to string, notBefore time.Time) (*domain.RateCacheEntry, error) {
	args := m.Called(ctx, from, to, notBefore)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateCacheEntry), args.Error(1)
}

func (m *MockRateCache) UpsertRate(ctx context.Context, entry domain.RateCacheEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, workplaceID, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, workplaceID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListCustomers(ctx context.Context, workplaceID string, page domain.Page) ([]domain.Customer, error) {
	args := m.Called(ctx, workplaceID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindFirstCustomerByName(ctx context.Context, workplaceID, namePart string) (*domain.Customer, error) {
	args := m.Called(ctx, workplaceID, namePart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *MockCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *MockCustomerRepository) SoftDeleteCustomer(ctx context.Context, workplaceID, customerID string, deletedAt time.Time, deletedBy string) error {
	return m.Called(ctx, workplaceID, customerID, deletedAt, deletedBy).Error(0)
}

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, workplaceID, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, workplaceID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, filter domain.InvoiceFilter, page domain.Page) ([]domain.Invoice, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListAllInvoices(ctx context.Context, filter domain.InvoiceFilter) ([]domain.Invoice, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	return m.Called(ctx, invoice).Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	return m.Called(ctx, invoice).Error(0)
}

func (m *MockInvoiceRepository) SoftDeleteInvoice(ctx context.Context, workplaceID, invoiceID string, deletedAt time.Time, deletedBy string) error {
	return m.Called(ctx, workplaceID, invoiceID, deletedAt, deletedBy).Error(0)
}

type MockWorkplaceRepository struct {
	mock.Mock
}

func (m *MockWorkplaceRepository) FindWorkplaceByID(ctx context.Context, workplaceID string) (*domain.Workplace, error) {
	args := m.Called(ctx, workplaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workplace), args.Error(1)
}

func (m *MockWorkplaceRepository) ListWorkplacesByUserID(ctx context.Context, userID string) ([]domain.Workplace, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Workplace), args.Error(1)
}

func (m *MockWorkplaceRepository) SaveWorkplace(ctx context.Context, workplace domain.Workplace, creator domain.UserWorkplace) error {
	return m.Called(ctx, workplace, creator).Error(0)
}

func (m *MockWorkplaceRepository) AddUserToWorkplace(ctx context.Context, membership domain.UserWorkplace) error {
	return m.Called(ctx, membership).Error(0)
}

func (m *MockWorkplaceRepository) FindUserWorkplaceRole(ctx context.Context, userID, workplaceID string) (*domain.UserWorkplace, error) {
	args := m.Called(ctx, userID, workplaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserWorkplace), args.Error(1)
}

// --- Provider ---

type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) SupportedCodes(ctx context.Context) (map[string]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockRateProvider) PairRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Collaborating services ---

type MockRateResolver struct {
	mock.Mock
}

func (m *MockRateResolver) GetRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockWorkplaceCurrency struct {
	mock.Mock
}

func (m *MockWorkplaceCurrency) DefaultCurrency(ctx context.Context, workplaceID string) (string, error) {
	args := m.Called(ctx, workplaceID)
	return args.String(0), args.Error(1)
}

type MockAuthorizer struct {
	mock.Mock
}

func (m *MockAuthorizer) AuthorizeUserAction(ctx context.Context, userID, workplaceID string, requiredRole domain.UserWorkplaceRole) error {
	return m.Called(ctx, userID, workplaceID, requiredRole).Error(0)
}
