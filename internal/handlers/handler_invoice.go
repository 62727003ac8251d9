package handlers

import (
	"net/http"

	"github.com/SscSPs/invoice_analytics/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_analytics/internal/core/ports/services"
	"github.com/SscSPs/invoice_analytics/internal/dto"
	"github.com/gin-gonic/gin"
)

// invoiceHandler handles HTTP requests related to invoices.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

func registerInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade) {
	h := &invoiceHandler{invoiceService: invoiceService}

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:invoice_id", h.getInvoice)
		invoices.PUT("/:invoice_id", h.updateInvoice)
		invoices.DELETE("/:invoice_id", h.deleteInvoice)
	}
}

// createInvoice godoc
// @Summary Create an invoice
// @Description Stores the invoice with its amount converted into the workplace default currency.
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   workplace_id path string true "Workplace ID"
// @Param   invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid currency or customer deleted"
// @Failure 404 {object} handlers.ErrorResponse "Customer not found"
// @Failure 422 {object} handlers.ErrorResponse "Invalid input"
// @Failure 503 {object} handlers.ErrorResponse "Exchange rate API unavailable"
// @Failure 504 {object} handlers.ErrorResponse "Exchange rate API timeout"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := requestUser(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), c.Param("workplace_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create invoice")
		return
	}
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

// listInvoices godoc
// @Summary List invoices
// @Description Lists non-deleted invoices, oldest first, optionally for one customer.
// @Tags invoices
// @Produce  json
// @Param   workplace_id path string true "Workplace ID"
// @Param   customer_id query string false "Customer ID"
// @Param   skip query int false "Rows to skip" default(0)
// @Param   limit query int false "Maximum rows" default(100)
// @Success 200 {array} dto.InvoiceResponse
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	var params dto.ListInvoicesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := requestUser(c)
	if !ok {
		return
	}

	filter := domain.InvoiceFilter{WorkplaceID: c.Param("workplace_id")}
	if params.CustomerID != "" {
		filter.CustomerID = &params.CustomerID
	}

	invoices, err := h.invoiceService.ListInvoices(c.Request.Context(), filter, params.ToPage(), userID)
	if err != nil {
		respondError(c, err, "Failed to list invoices")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponses(invoices))
}

// getInvoice godoc
// @Summary Get an invoice
// @Tags invoices
// @Produce  json
// @Param   workplace_id path string true "Workplace ID"
// @Param   invoice_id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} handlers.ErrorResponse "Invoice deleted"
// @Failure 404 {object} handlers.ErrorResponse "Invoice not found"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/invoices/{invoice_id} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	userID, ok := requestUser(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), c.Param("workplace_id"), c.Param("invoice_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to get invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// updateInvoice godoc
// @Summary Update an invoice
// @Description Changes amount and/or currency; the conversion is always recomputed.
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   workplace_id path string true "Workplace ID"
// @Param   invoice_id path string true "Invoice ID"
// @Param   invoice body dto.UpdateInvoiceRequest true "Fields to change"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} handlers.ErrorResponse "Invoice deleted or invalid currency"
// @Failure 404 {object} handlers.ErrorResponse "Invoice not found"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/invoices/{invoice_id} [put]
func (h *invoiceHandler) updateInvoice(c *gin.Context) {
	var req dto.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := requestUser(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), c.Param("workplace_id"), c.Param("invoice_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// deleteInvoice godoc
// @Summary Soft-delete an invoice
// @Tags invoices
// @Param   workplace_id path string true "Workplace ID"
// @Param   invoice_id path string true "Invoice ID"
// @Success 204 "No Content"
// @Failure 400 {object} handlers.ErrorResponse "Invoice already deleted"
// @Failure 404 {object} handlers.ErrorResponse "Invoice not found"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/invoices/{invoice_id} [delete]
func (h *invoiceHandler) deleteInvoice(c *gin.Context) {
	userID, ok := requestUser(c)
	if !ok {
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), c.Param("workplace_id"), c.Param("invoice_id"), userID); err != nil {
		respondError(c, err, "Failed to delete invoice")
		return
	}
	c.Status(http.StatusNoContent)
}
