package services

import (
	"context"

	"github.com/SscSPs/invoice_analytics/internal/core/domain"
)

// AnalyticsSvcFacade aggregates invoice amounts converted into a target currency.
type AnalyticsSvcFacade interface {
	TotalRevenue(ctx context.Context, query domain.AnalyticsQuery, userID string) (*domain.RevenueAggregate, error)
	AverageInvoice(ctx context.Context, query domain.AnalyticsQuery, userID string) (*domain.RevenueAggregate, error)
}
