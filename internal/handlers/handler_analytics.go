package handlers

import (
	"errors"
	"io"
	"net/http"

	portssvc "github.com/SscSPs/invoice_analytics/internal/core/ports/services"
	"github.com/SscSPs/invoice_analytics/internal/dto"
	"github.com/gin-gonic/gin"
)

type analyticsHandler struct {
	analyticsService portssvc.AnalyticsSvcFacade
}

func registerAnalyticsRoutes(rg *gin.RouterGroup, analyticsService portssvc.AnalyticsSvcFacade) {
	h := &analyticsHandler{analyticsService: analyticsService}

	analytics := rg.Group("/analytics")
	{
		analytics.POST("/total-revenue", h.totalRevenue)
		analytics.POST("/average-invoice", h.averageInvoice)
	}
}

// bindAnalytics binds the optional body; an empty body means no filters.
func bindAnalytics(c *gin.Context) (dto.AnalyticsRequest, bool) {
	var req dto.AnalyticsRequest
	if c.Request.ContentLength == 0 {
		return req, true
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBindError(c, err)
		return req, false
	}
	return req, true
}

// totalRevenue godoc
// @Summary Total revenue
// @Description Sums non-deleted invoices converted into the target currency (workplace default when omitted).
// @Tags analytics
// @Accept  json
// @Produce  json
// @Param   workplace_id path string true "Workplace ID"
// @Param   filters body dto.AnalyticsRequest false "Filters"
// @Success 200 {object} dto.TotalRevenueResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid currency"
// @Failure 503 {object} handlers.ErrorResponse "Exchange rate API unavailable"
// @Failure 504 {object} handlers.ErrorResponse "Exchange rate API timeout"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/analytics/total-revenue [post]
func (h *analyticsHandler) totalRevenue(c *gin.Context) {
	req, ok := bindAnalytics(c)
	if !ok {
		return
	}
	userID, ok := requestUser(c)
	if !ok {
		return
	}

	agg, err := h.analyticsService.TotalRevenue(c.Request.Context(), req.ToQuery(c.Param("workplace_id")), userID)
	if err != nil {
		respondError(c, err, "Failed to compute total revenue")
		return
	}
	c.JSON(http.StatusOK, dto.ToTotalRevenueResponse(agg))
}

// averageInvoice godoc
// @Summary Average invoice size
// @Description Averages non-deleted invoices converted into the target currency; 0 when nothing matches.
// @Tags analytics
// @Accept  json
// @Produce  json
// @Param   workplace_id path string true "Workplace ID"
// @Param   filters body dto.AnalyticsRequest false "Filters"
// @Success 200 {object} dto.AverageInvoiceResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid currency"
// @Failure 503 {object} handlers.ErrorResponse "Exchange rate API unavailable"
// @Failure 504 {object} handlers.ErrorResponse "Exchange rate API timeout"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/analytics/average-invoice [post]
func (h *analyticsHandler) averageInvoice(c *gin.Context) {
	req, ok := bindAnalytics(c)
	if !ok {
		return
	}
	userID, ok := requestUser(c)
	if !ok {
		return
	}

	agg, err := h.analyticsService.AverageInvoice(c.Request.Context(), req.ToQuery(c.Param("workplace_id")), userID)
	if err != nil {
		respondError(c, err, "Failed to compute average invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToAverageInvoiceResponse(agg))
}
