// Package pricing talks to the remote exchange rate provider.
package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/SscSPs/invoice_analytics/internal/apperrors"
	"github.com/SscSPs/invoice_analytics/internal/core/ports/providers"
	"github.com/SscSPs/invoice_analytics/internal/platform/metrics"
	"github.com/shopspring/decimal"
)

// RequestTimeout bounds every call to the provider.
const RequestTimeout = 10 * time.Second

const (
	endpointCodes = "codes"
	endpointPair  = "pair"
	resultSuccess = "success"
)

// ExchangeRateAPIClient is a client for the exchangerate-api.com v6 API.
type ExchangeRateAPIClient struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	Metrics *metrics.Metrics
}

var _ providers.RateProvider = (*ExchangeRateAPIClient)(nil)

// NewExchangeRateAPIClient builds a client with the fixed request timeout.
func NewExchangeRateAPIClient(baseURL, apiKey string, m *metrics.Metrics) *ExchangeRateAPIClient {
	return &ExchangeRateAPIClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: RequestTimeout},
		Metrics: m,
	}
}

type codesResponse struct {
	Result         string      `json:"result"`
	ErrorType      string      `json:"error-type"`
	SupportedCodes [][2]string `json:"supported_codes"`
}

type pairResponse struct {
	Result         string          `json:"result"`
	ErrorType      string          `json:"error-type"`
	ConversionRate decimal.Decimal `json:"conversion_rate"`
}

// SupportedCodes returns the provider's supported currency codes mapped to their names.
func (c *ExchangeRateAPIClient) SupportedCodes(ctx context.Context) (map[string]string, error) {
	var body codesResponse
	status, err := c.get(ctx, endpointCodes, &body, endpointCodes)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		c.Metrics.ProviderRequest(endpointCodes, metrics.OutcomeUnavailable)
		return nil, apperrors.NewAppError(http.StatusServiceUnavailable, "Exchange rate API unavailable", apperrors.ErrUpstreamUnavailable)
	}
	if body.Result != resultSuccess {
		c.Metrics.ProviderRequest(endpointCodes, metrics.OutcomeBusinessError)
		return nil, apperrors.NewUpstreamBusinessError("API error: " + errorType(body.ErrorType))
	}

	c.Metrics.ProviderRequest(endpointCodes, metrics.OutcomeSuccess)
	codes := make(map[string]string, len(body.SupportedCodes))
	for _, pair := range body.SupportedCodes {
		codes[pair[0]] = pair[1]
	}
	return codes, nil
}

// PairRate returns the provider's conversion rate from one unit of fromCurrency into toCurrency.
func (c *ExchangeRateAPIClient) PairRate(ctx context.Context, fromCurrency, toCurrency string) (decimal.Decimal, error) {
	var body pairResponse
	status, err := c.get(ctx, endpointPair, &body, endpointPair, fromCurrency, toCurrency)
	if err != nil {
		return decimal.Zero, err
	}
	if status != http.StatusOK {
		c.Metrics.ProviderRequest(endpointPair, metrics.OutcomeBusinessError)
		return decimal.Zero, apperrors.NewUpstreamBusinessError("Invalid currency code or API error")
	}
	if body.Result != resultSuccess {
		c.Metrics.ProviderRequest(endpointPair, metrics.OutcomeBusinessError)
		return decimal.Zero, apperrors.NewUpstreamBusinessError("Invalid currency code or API error: " + errorType(body.ErrorType))
	}
	if !body.ConversionRate.IsPositive() {
		c.Metrics.ProviderRequest(endpointPair, metrics.OutcomeBusinessError)
		return decimal.Zero, apperrors.NewUpstreamBusinessError("Invalid currency code or API error: non-positive conversion rate")
	}

	c.Metrics.ProviderRequest(endpointPair, metrics.OutcomeSuccess)
	return body.ConversionRate, nil
}

func errorType(t string) string {
	if t == "" {
		return "Unknown error"
	}
	return t
}

// get issues GET {base}/{key}/{segments...} and decodes a 200 body into out.
// Transport failures are returned as upstream errors; any HTTP status is returned to the caller.
func (c *ExchangeRateAPIClient) get(ctx context.Context, endpoint string, out any, segments ...string) (int, error) {
	if c.BaseURL == "" || c.APIKey == "" {
		c.Metrics.ProviderRequest(endpoint, metrics.OutcomeUnavailable)
		return 0, apperrors.NewAppError(http.StatusServiceUnavailable, "Exchange rate API is not configured", apperrors.ErrUpstreamUnavailable)
	}

	u, err := url.JoinPath(c.BaseURL, append([]string{c.APIKey}, segments...)...)
	if err != nil {
		return 0, fmt.Errorf("exchangerate-api: invalid base url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, fmt.Errorf("exchangerate-api: create request: %w", err)
	}

	client := c.Client
	if client == nil {
		client = &http.Client{Timeout: RequestTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		if isTimeout(err) {
			c.Metrics.ProviderRequest(endpoint, metrics.OutcomeTimeout)
			return 0, apperrors.NewAppError(http.StatusGatewayTimeout, "Exchange rate API timeout", apperrors.ErrUpstreamTimeout)
		}
		c.Metrics.ProviderRequest(endpoint, metrics.OutcomeUnavailable)
		return 0, apperrors.NewAppError(http.StatusServiceUnavailable, "Failed to connect to exchange rate API: "+err.Error(), apperrors.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.Metrics.ProviderRequest(endpoint, metrics.OutcomeUnavailable)
		return 0, apperrors.NewAppError(http.StatusServiceUnavailable, "Exchange rate API returned an unreadable response", fmt.Errorf("%w: %v", apperrors.ErrUpstreamUnavailable, err))
	}
	return resp.StatusCode, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
