package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/invoice_analytics/internal/apperrors"
	"github.com/SscSPs/invoice_analytics/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_analytics/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_analytics/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

type analyticsService struct {
	BaseService
	invoiceRepo portsrepo.InvoiceReader
	rates       portssvc.RateResolverSvc
	workplaces  portssvc.WorkplaceCurrencySvc
}

// NewAnalyticsService creates the revenue aggregation service.
func NewAnalyticsService(
	invoiceRepo portsrepo.InvoiceReader,
	rates portssvc.RateResolverSvc,
	workplaces portssvc.WorkplaceCurrencySvc,
	authorizer portssvc.WorkplaceAuthorizerSvc,
) portssvc.AnalyticsSvcFacade {
	return &analyticsService{
		BaseService: BaseService{WorkplaceAuthorizer: authorizer},
		invoiceRepo: invoiceRepo,
		rates:       rates,
		workplaces:  workplaces,
	}
}

var _ portssvc.AnalyticsSvcFacade = (*analyticsService)(nil)

func (s *analyticsService) TotalRevenue(ctx context.Context, query domain.AnalyticsQuery, userID string) (*domain.RevenueAggregate, error) {
	agg, sum, err := s.aggregate(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	agg.Value = sum.Round(domain.MoneyScale)
	return agg, nil
}

func (s *analyticsService) AverageInvoice(ctx context.Context, query domain.AnalyticsQuery, userID string) (*domain.RevenueAggregate, error) {
	agg, sum, err := s.aggregate(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	if agg.InvoiceCount > 0 {
		agg.Value = sum.Div(decimal.NewFromInt(int64(agg.InvoiceCount))).Round(domain.MoneyScale)
	}
	return agg, nil
}

// aggregate converts every selected invoice into the target currency and
// returns the unrounded sum. Rates are looked up once per source currency.
func (s *analyticsService) aggregate(ctx context.Context, query domain.AnalyticsQuery, userID string) (*domain.RevenueAggregate, decimal.Decimal, error) {
	if err := s.AuthorizeUser(ctx, userID, query.WorkplaceID, domain.RoleReadOnly); err != nil {
		return nil, decimal.Zero, err
	}

	target := domain.NormalizeCurrency(query.TargetCurrency)
	if target == "" {
		def, err := s.workplaces.DefaultCurrency(ctx, query.WorkplaceID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		target = def
	}
	if !domain.IsCurrencyCodeShape(target) {
		return nil, decimal.Zero, apperrors.NewInvalidCurrencyError(fmt.Sprintf("Invalid currency code: %s. Currency is not supported.", target))
	}

	invoices, err := s.invoiceRepo.ListAllInvoices(ctx, domain.InvoiceFilter{
		WorkplaceID: query.WorkplaceID,
		CustomerID:  query.CustomerID,
		Start:       query.StartDate,
		End:         query.EndDate,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to select invoices for analytics", slog.String("workplace_id", query.WorkplaceID))
		return nil, decimal.Zero, fmt.Errorf("failed to select invoices: %w", err)
	}

	agg := &domain.RevenueAggregate{
		Value:        decimal.Zero,
		Currency:     target,
		InvoiceCount: len(invoices),
		CustomerID:   query.CustomerID,
		StartDate:    query.StartDate,
		EndDate:      query.EndDate,
	}

	sum := decimal.Zero
	rates := make(map[string]decimal.Decimal)
	for _, inv := range invoices {
		if inv.Currency == target {
			sum = sum.Add(inv.Amount)
			continue
		}
		rate, ok := rates[inv.Currency]
		if !ok {
			rate, err = s.rates.GetRate(ctx, inv.Currency, target)
			if err != nil {
				return nil, decimal.Zero, err
			}
			rates[inv.Currency] = rate
		}
		sum = sum.Add(inv.Amount.Mul(rate))
	}

	s.LogDebug(ctx, "Analytics aggregate computed",
		slog.String("workplace_id", query.WorkplaceID),
		slog.String("currency", target),
		slog.Int("invoice_count", agg.InvoiceCount),
		slog.Int("rate_lookups", len(rates)))
	return agg, sum, nil
}
