package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/invoice_analytics/internal/apperrors"
	"github.com/SscSPs/invoice_analytics/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_analytics/internal/core/ports/services"
	"github.com/SscSPs/invoice_analytics/internal/core/services"
	"github.com/SscSPs/invoice_analytics/internal/platform/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ExchangeRateServiceTestSuite struct {
	suite.Suite
	cache    *MockRateCache
	provider *MockRateProvider
	metrics  *metrics.Metrics
	now      time.Time
	service  portssvc.ExchangeRateSvcFacade
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.cache = new(MockRateCache)
	suite.provider = new(MockRateProvider)
	suite.metrics = metrics.New(false)
	suite.now = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	suite.service = services.NewExchangeRateService(suite.cache, suite.provider,
		services.WithRateMetrics(suite.metrics),
		services.WithClock(func() time.Time { return suite.now }),
	)
}

func (suite *ExchangeRateServiceTestSuite) notBefore() time.Time {
	return suite.now.Add(-domain.RateFreshnessWindow)
}

func (suite *ExchangeRateServiceTestSuite) miss() error {
	return apperrors.NewNotFoundError("miss")
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_IdentityIsOne() {
	rate, err := suite.service.GetRate(context.Background(), "usd", "USD")

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.NewFromInt(1)))
	suite.cache.AssertNotCalled(suite.T(), "FindFreshRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.RateLookupCount(metrics.SourceIdentity)))
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_DirectCacheHit() {
	suite.cache.On("FindFreshRate", mock.Anything, "EUR", "USD", suite.notBefore()).
		Return(&domain.RateCacheEntry{FromCurrency: "EUR", ToCurrency: "USD", Rate: decimal.RequireFromString("1.0842"), CreatedAt: suite.now}, nil).Once()

	rate, err := suite.service.GetRate(context.Background(), "eur", "usd")

	suite.Require().NoError(err)
	suite.Equal("1.0842", rate.String())
	suite.provider.AssertNotCalled(suite.T(), "PairRate", mock.Anything, mock.Anything, mock.Anything)
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.RateLookupCount(metrics.SourceCacheDirect)))
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_InverseCacheHit() {
	suite.cache.On("FindFreshRate", mock.Anything, "EUR", "USD", suite.notBefore()).Return(nil, suite.miss()).Once()
	suite.cache.On("FindFreshRate", mock.Anything, "USD", "EUR", suite.notBefore()).
		Return(&domain.RateCacheEntry{FromCurrency: "USD", ToCurrency: "EUR", Rate: decimal.RequireFromString("0.8"), CreatedAt: suite.now}, nil).Once()

	rate, err := suite.service.GetRate(context.Background(), "EUR", "USD")

	suite.Require().NoError(err)
	suite.Equal("1.25", rate.String())
	suite.provider.AssertNotCalled(suite.T(), "SupportedCodes", mock.Anything)
	suite.provider.AssertNotCalled(suite.T(), "PairRate", mock.Anything, mock.Anything, mock.Anything)
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.RateLookupCount(metrics.SourceCacheInverse)))
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_FetchesAndCachesOnMiss() {
	suite.cache.On("FindFreshRate", mock.Anything, "EUR", "USD", suite.notBefore()).Return(nil, suite.miss()).Once()
	suite.cache.On("FindFreshRate", mock.Anything, "USD", "EUR", suite.notBefore()).Return(nil, suite.miss()).Once()
	suite.provider.On("SupportedCodes", mock.Anything).Return(map[string]string{"EUR": "Euro", "USD": "US Dollar"}, nil).Once()
	suite.provider.On("PairRate", mock.Anything, "EUR", "USD").Return(decimal.RequireFromString("1.0842"), nil).Once()
	suite.cache.On("UpsertRate", mock.Anything, mock.MatchedBy(func(e domain.RateCacheEntry) bool {
		return e.FromCurrency == "EUR" && e.ToCurrency == "USD" && e.Rate.Equal(decimal.RequireFromString("1.0842")) && e.CreatedAt.Equal(suite.now)
	})).Return(nil).Once()

	rate, err := suite.service.GetRate(context.Background(), "EUR", "USD")

	suite.Require().NoError(err)
	suite.Equal("1.0842", rate.String())
	suite.cache.AssertExpectations(suite.T())
	suite.provider.AssertExpectations(suite.T())
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.RateLookupCount(metrics.SourceProvider)))
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_UpsertFailureStillReturnsRate() {
	suite.cache.On("FindFreshRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, suite.miss())
	suite.provider.On("SupportedCodes", mock.Anything).Return(map[string]string{"GBP": "Pound", "USD": "US Dollar"}, nil).Once()
	suite.provider.On("PairRate", mock.Anything, "GBP", "USD").Return(decimal.RequireFromString("1.3"), nil).Once()
	suite.cache.On("UpsertRate", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

	rate, err := suite.service.GetRate(context.Background(), "GBP", "USD")

	suite.Require().NoError(err)
	suite.Equal("1.3", rate.String())
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_UnsupportedCurrency() {
	suite.cache.On("FindFreshRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, suite.miss())
	suite.provider.On("SupportedCodes", mock.Anything).Return(map[string]string{"USD": "US Dollar"}, nil).Once()

	_, err := suite.service.GetRate(context.Background(), "XYZ", "USD")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidCurrency)
	suite.Equal("Invalid currency code: XYZ. Currency is not supported.", apperrors.Message(err))
	suite.provider.AssertNotCalled(suite.T(), "PairRate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_MalformedCodeSkipsLookups() {
	_, err := suite.service.GetRate(context.Background(), "EURO", "USD")

	suite.ErrorIs(err, apperrors.ErrInvalidCurrency)
	suite.cache.AssertNotCalled(suite.T(), "FindFreshRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_ProviderTimeoutPropagates() {
	suite.cache.On("FindFreshRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, suite.miss())
	suite.provider.On("SupportedCodes", mock.Anything).
		Return(nil, apperrors.NewAppError(504, "Exchange rate API timeout", apperrors.ErrUpstreamTimeout)).Once()

	_, err := suite.service.GetRate(context.Background(), "EUR", "USD")

	suite.ErrorIs(err, apperrors.ErrUpstreamTimeout)
	suite.cache.AssertNotCalled(suite.T(), "UpsertRate", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_CacheErrorIsNotAMiss() {
	suite.cache.On("FindFreshRate", mock.Anything, "EUR", "USD", mock.Anything).Return(nil, errors.New("connection reset")).Once()

	_, err := suite.service.GetRate(context.Background(), "EUR", "USD")

	suite.Require().Error(err)
	suite.Contains(err.Error(), "failed to read rate cache")
	suite.provider.AssertNotCalled(suite.T(), "SupportedCodes", mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestValidateCurrency() {
	suite.provider.On("SupportedCodes", mock.Anything).Return(map[string]string{"EUR": "Euro"}, nil)

	suite.NoError(suite.service.ValidateCurrency(context.Background(), "eur"))
	suite.ErrorIs(suite.service.ValidateCurrency(context.Background(), "JPY"), apperrors.ErrInvalidCurrency)
}

func TestExchangeRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
