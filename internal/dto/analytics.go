package dto

import (
	"time"

	"github.com/SscSPs/invoice_analytics/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AnalyticsRequest is the body of both analytics endpoints.
type AnalyticsRequest struct {
	TargetCurrency *string   `json:"target_currency" binding:"omitempty,len=3,alpha"`
	CustomerID     *string   `json:"customer_id" binding:"omitempty,uuid"`
	StartDate      *DateTime `json:"start_date" swaggertype:"string" format:"date-time"`
	EndDate        *DateTime `json:"end_date" swaggertype:"string" format:"date-time"`
}

// ToQuery converts the request into a domain query scoped to workplaceID.
func (r AnalyticsRequest) ToQuery(workplaceID string) domain.AnalyticsQuery {
	q := domain.AnalyticsQuery{
		WorkplaceID: workplaceID,
		CustomerID:  r.CustomerID,
		StartDate:   r.StartDate.Ptr(),
		EndDate:     r.EndDate.Ptr(),
	}
	if r.TargetCurrency != nil {
		q.TargetCurrency = *r.TargetCurrency
	}
	return q
}

// TotalRevenueResponse is returned by the total-revenue endpoint.
type TotalRevenueResponse struct {
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	analyticsEcho
}

// AverageInvoiceResponse is returned by the average-invoice endpoint.
type AverageInvoiceResponse struct {
	AverageInvoiceSize decimal.Decimal `json:"average_invoice_size"`
	analyticsEcho
}

type analyticsEcho struct {
	Currency     string     `json:"currency"`
	InvoiceCount int        `json:"invoice_count"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	CustomerID   *string    `json:"customer_id"`
}

func echoOf(a *domain.RevenueAggregate) analyticsEcho {
	return analyticsEcho{
		Currency:     a.Currency,
		InvoiceCount: a.InvoiceCount,
		StartDate:    a.StartDate,
		EndDate:      a.EndDate,
		CustomerID:   a.CustomerID,
	}
}

func ToTotalRevenueResponse(a *domain.RevenueAggregate) TotalRevenueResponse {
	return TotalRevenueResponse{TotalRevenue: a.Value, analyticsEcho: echoOf(a)}
}

func ToAverageInvoiceResponse(a *domain.RevenueAggregate) AverageInvoiceResponse {
	return AverageInvoiceResponse{AverageInvoiceSize: a.Value, analyticsEcho: echoOf(a)}
}
