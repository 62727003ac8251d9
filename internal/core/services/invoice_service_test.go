package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/invoice_analytics/internal/apperrors"
	"github.com/SscSPs/invoice_analytics/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_analytics/internal/core/ports/services"
	"github.com/SscSPs/invoice_analytics/internal/core/services"
	"github.com/SscSPs/invoice_analytics/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type InvoiceServiceTestSuite struct {
	suite.Suite
	invoiceRepo  *MockInvoiceRepository
	customerRepo *MockCustomerRepository
	rates        *MockRateResolver
	workplaces   *MockWorkplaceCurrency
	service      portssvc.InvoiceSvcFacade

	workplaceID string
	userID      string
	customer    *domain.Customer
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.invoiceRepo = new(MockInvoiceRepository)
	suite.customerRepo = new(MockCustomerRepository)
	suite.rates = new(MockRateResolver)
	suite.workplaces = new(MockWorkplaceCurrency)
	suite.service = services.NewInvoiceService(suite.invoiceRepo, suite.customerRepo, suite.rates, suite.workplaces, nil)

	suite.workplaceID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.customer = &domain.Customer{CustomerID: uuid.NewString(), WorkplaceID: suite.workplaceID, Name: "Test Customer"}
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_StampsRateAndConvertedAmount() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{
		CustomerID: suite.customer.CustomerID,
		Amount:     decimal.RequireFromString("1000.00"),
		Currency:   "eur",
	}

	suite.customerRepo.On("FindCustomerByID", ctx, suite.workplaceID, suite.customer.CustomerID).Return(suite.customer, nil).Once()
	suite.workplaces.On("DefaultCurrency", ctx, suite.workplaceID).Return("USD", nil).Once()
	suite.rates.On("GetRate", ctx, "EUR", "USD").Return(decimal.RequireFromString("1.0842"), nil).Once()
	suite.invoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()

	inv, err := suite.service.CreateInvoice(ctx, suite.workplaceID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(inv)
	suite.NotEmpty(inv.InvoiceID)
	suite.Equal("EUR", inv.Currency)
	suite.Equal("USD", inv.DefaultCurrency)
	suite.True(inv.Amount.Equal(decimal.RequireFromString("1000")))
	suite.Require().NotNil(inv.ExchangeRate)
	suite.Equal("1.0842", inv.ExchangeRate.String())
	suite.Require().NotNil(inv.AmountInDefaultCurrency)
	suite.Equal("1084.2", inv.AmountInDefaultCurrency.String())
	suite.Equal(suite.userID, inv.CreatedBy)

	suite.invoiceRepo.AssertExpectations(suite.T())
	suite.rates.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_NonPositiveAmount() {
	req := dto.CreateInvoiceRequest{CustomerID: suite.customer.CustomerID, Amount: decimal.Zero, Currency: "USD"}

	inv, err := suite.service.CreateInvoice(context.Background(), suite.workplaceID, req, suite.userID)

	suite.Nil(inv)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.customerRepo.AssertNotCalled(suite.T(), "FindCustomerByID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_CustomerNotFound() {
	ctx := context.Background()
	missing := uuid.NewString()
	suite.customerRepo.On("FindCustomerByID", ctx, suite.workplaceID, missing).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateInvoice(ctx, suite.workplaceID, dto.CreateInvoiceRequest{
		CustomerID: missing, Amount: decimal.NewFromInt(5), Currency: "USD",
	}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Contains(apperrors.Message(err), missing)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_CustomerDeleted() {
	ctx := context.Background()
	deletedAt := time.Now()
	suite.customer.DeletedAt = &deletedAt
	suite.customerRepo.On("FindCustomerByID", ctx, suite.workplaceID, suite.customer.CustomerID).Return(suite.customer, nil).Once()

	_, err := suite.service.CreateInvoice(ctx, suite.workplaceID, dto.CreateInvoiceRequest{
		CustomerID: suite.customer.CustomerID, Amount: decimal.NewFromInt(5), Currency: "USD",
	}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrAlreadyDeleted)
	suite.rates.AssertNotCalled(suite.T(), "GetRate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_UpstreamErrorIsNotSaved() {
	ctx := context.Background()
	suite.customerRepo.On("FindCustomerByID", ctx, suite.workplaceID, suite.customer.CustomerID).Return(suite.customer, nil).Once()
	suite.workplaces.On("DefaultCurrency", ctx, suite.workplaceID).Return("USD", nil).Once()
	suite.rates.On("GetRate", ctx, "GBP", "USD").
		Return(decimal.Zero, apperrors.NewAppError(503, "Exchange rate API unavailable", apperrors.ErrUpstreamUnavailable)).Once()

	_, err := suite.service.CreateInvoice(ctx, suite.workplaceID, dto.CreateInvoiceRequest{
		CustomerID: suite.customer.CustomerID, Amount: decimal.NewFromInt(10), Currency: "GBP",
	}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrUpstreamUnavailable)
	suite.invoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) existingInvoice() *domain.Invoice {
	rate := decimal.RequireFromString("1.0842")
	converted := decimal.RequireFromString("1084.20")
	return &domain.Invoice{
		InvoiceID:               uuid.NewString(),
		WorkplaceID:             suite.workplaceID,
		CustomerID:              suite.customer.CustomerID,
		Amount:                  decimal.NewFromInt(1000),
		Currency:                "EUR",
		DefaultCurrency:         "USD",
		ExchangeRate:            &rate,
		AmountInDefaultCurrency: &converted,
	}
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_ResolvesNewCurrency() {
	ctx := context.Background()
	inv := suite.existingInvoice()
	newCurrency := "gbp"
	newAmount := decimal.NewFromInt(200)

	suite.invoiceRepo.On("FindInvoiceByID", ctx, suite.workplaceID, inv.InvoiceID).Return(inv, nil).Once()
	suite.rates.On("GetRate", ctx, "GBP", "USD").Return(decimal.RequireFromString("1.27"), nil).Once()
	suite.invoiceRepo.On("UpdateInvoice", ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()

	updated, err := suite.service.UpdateInvoice(ctx, suite.workplaceID, inv.InvoiceID, dto.UpdateInvoiceRequest{
		Amount: &newAmount, Currency: &newCurrency,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("GBP", updated.Currency)
	suite.Equal("254", updated.AmountInDefaultCurrency.String())
	suite.Equal("1.27", updated.ExchangeRate.String())
	suite.Equal(suite.userID, updated.LastUpdatedBy)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_EmptyBodyStillRefetchesRate() {
	ctx := context.Background()
	inv := suite.existingInvoice()

	suite.invoiceRepo.On("FindInvoiceByID", ctx, suite.workplaceID, inv.InvoiceID).Return(inv, nil).Once()
	suite.rates.On("GetRate", ctx, "EUR", "USD").Return(decimal.RequireFromString("1.1"), nil).Once()
	suite.invoiceRepo.On("UpdateInvoice", ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()

	updated, err := suite.service.UpdateInvoice(ctx, suite.workplaceID, inv.InvoiceID, dto.UpdateInvoiceRequest{}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("1100", updated.AmountInDefaultCurrency.String())
	suite.rates.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestGetInvoice_Deleted() {
	ctx := context.Background()
	inv := suite.existingInvoice()
	deletedAt := time.Now()
	inv.DeletedAt = &deletedAt
	suite.invoiceRepo.On("FindInvoiceByID", ctx, suite.workplaceID, inv.InvoiceID).Return(inv, nil).Once()

	_, err := suite.service.GetInvoice(ctx, suite.workplaceID, inv.InvoiceID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrAlreadyDeleted)
}

func (suite *InvoiceServiceTestSuite) TestDeleteInvoice_Twice() {
	ctx := context.Background()
	inv := suite.existingInvoice()
	suite.invoiceRepo.On("FindInvoiceByID", ctx, suite.workplaceID, inv.InvoiceID).Return(inv, nil).Once()
	suite.invoiceRepo.On("SoftDeleteInvoice", ctx, suite.workplaceID, inv.InvoiceID, mock.AnythingOfType("time.Time"), suite.userID).Return(nil).Once()

	suite.Require().NoError(suite.service.DeleteInvoice(ctx, suite.workplaceID, inv.InvoiceID, suite.userID))

	deleted := *inv
	deletedAt := time.Now()
	deleted.DeletedAt = &deletedAt
	suite.invoiceRepo.On("FindInvoiceByID", ctx, suite.workplaceID, inv.InvoiceID).Return(&deleted, nil).Once()

	err := suite.service.DeleteInvoice(ctx, suite.workplaceID, inv.InvoiceID, suite.userID)
	suite.ErrorIs(err, apperrors.ErrAlreadyDeleted)
	suite.Contains(apperrors.Message(err), "already deleted")
	suite.invoiceRepo.AssertNumberOfCalls(suite.T(), "SoftDeleteInvoice", 1)
}

func (suite *InvoiceServiceTestSuite) TestListInvoices_NormalizesPage() {
	ctx := context.Background()
	filter := domain.InvoiceFilter{WorkplaceID: suite.workplaceID}
	suite.invoiceRepo.On("ListInvoices", ctx, filter, domain.Page{Skip: 0, Limit: domain.MaxPageLimit}).Return(nil, nil).Once()

	invs, err := suite.service.ListInvoices(ctx, filter, domain.Page{Skip: -3, Limit: 5000}, suite.userID)

	suite.Require().NoError(err)
	suite.NotNil(invs)
	suite.Empty(invs)
}

func (suite *InvoiceServiceTestSuite) TestWritesRequireMemberRole() {
	ctx := context.Background()
	auth := new(MockAuthorizer)
	svc := services.NewInvoiceService(suite.invoiceRepo, suite.customerRepo, suite.rates, suite.workplaces, auth)
	auth.On("AuthorizeUserAction", ctx, suite.userID, suite.workplaceID, domain.RoleMember).
		Return(apperrors.NewAppError(403, "role MEMBER required", apperrors.ErrForbidden)).Once()

	_, err := svc.CreateInvoice(ctx, suite.workplaceID, dto.CreateInvoiceRequest{
		CustomerID: suite.customer.CustomerID, Amount: decimal.NewFromInt(1), Currency: "USD",
	}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	auth.AssertExpectations(suite.T())
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
