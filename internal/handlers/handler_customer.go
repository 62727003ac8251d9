package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/invoice_analytics/internal/core/ports/services"
	"github.com/SscSPs/invoice_analytics/internal/dto"
	"github.com/gin-gonic/gin"
)

// customerHandler handles HTTP requests related to customers.
type customerHandler struct {
	customerService portssvc.CustomerSvcFacade
}

func registerCustomerRoutes(rg *gin.RouterGroup, customerService portssvc.CustomerSvcFacade) {
	h := &customerHandler{customerService: customerService}

	customers := rg.Group("/customers")
	{
		customers.POST("", h.createCustomer)
		customers.GET("", h.listCustomers)
		customers.GET("/:customer_id", h.getCustomer)
		customers.PUT("/:customer_id", h.updateCustomer)
		customers.DELETE("/:customer_id", h.deleteCustomer)
	}
}

// createCustomer godoc
// @Summary Create a customer
// @Tags customers
// @Accept  json
// @Produce  json
// @Param   workplace_id path string true "Workplace ID"
// @Param   customer body dto.CreateCustomerRequest true "Customer details"
// @Success 201 {object} dto.CustomerResponse
// @Failure 422 {object} handlers.ErrorResponse "Invalid input"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/customers [post]
func (h *customerHandler) createCustomer(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := requestUser(c)
	if !ok {
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), c.Param("workplace_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create customer")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCustomerResponse(customer))
}

// listCustomers godoc
// @Summary List customers
// @Description Lists non-deleted customers, oldest first.
// @Tags customers
// @Produce  json
// @Param   workplace_id path string true "Workplace ID"
// @Param   skip query int false "Rows to skip" default(0)
// @Param   limit query int false "Maximum rows" default(100)
// @Success 200 {array} dto.CustomerResponse
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/customers [get]
func (h *customerHandler) listCustomers(c *gin.Context) {
	var params dto.PageParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := requestUser(c)
	if !ok {
		return
	}

	customers, err := h.customerService.ListCustomers(c.Request.Context(), c.Param("workplace_id"), params.ToPage(), userID)
	if err != nil {
		respondError(c, err, "Failed to list customers")
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerResponses(customers))
}

// getCustomer godoc
// @Summary Get a customer
// @Tags customers
// @Produce  json
// @Param   workplace_id path string true "Workplace ID"
// @Param   customer_id path string true "Customer ID"
// @Success 200 {object} dto.CustomerResponse
// @Failure 400 {object} handlers.ErrorResponse "Customer deleted"
// @Failure 404 {object} handlers.ErrorResponse "Customer not found"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/customers/{customer_id} [get]
func (h *customerHandler) getCustomer(c *gin.Context) {
	userID, ok := requestUser(c)
	if !ok {
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), c.Param("workplace_id"), c.Param("customer_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to get customer")
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// updateCustomer godoc
// @Summary Update a customer
// @Tags customers
// @Accept  json
// @Produce  json
// @Param   workplace_id path string true "Workplace ID"
// @Param   customer_id path string true "Customer ID"
// @Param   customer body dto.UpdateCustomerRequest true "Fields to change"
// @Success 200 {object} dto.CustomerResponse
// @Failure 400 {object} handlers.ErrorResponse "Customer deleted"
// @Failure 404 {object} handlers.ErrorResponse "Customer not found"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/customers/{customer_id} [put]
func (h *customerHandler) updateCustomer(c *gin.Context) {
	var req dto.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := requestUser(c)
	if !ok {
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), c.Param("workplace_id"), c.Param("customer_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update customer")
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// deleteCustomer godoc
// @Summary Soft-delete a customer
// @Description Marks the customer and all of its invoices deleted.
// @Tags customers
// @Param   workplace_id path string true "Workplace ID"
// @Param   customer_id path string true "Customer ID"
// @Success 204 "No Content"
// @Failure 400 {object} handlers.ErrorResponse "Customer already deleted"
// @Failure 404 {object} handlers.ErrorResponse "Customer not found"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/customers/{customer_id} [delete]
func (h *customerHandler) deleteCustomer(c *gin.Context) {
	userID, ok := requestUser(c)
	if !ok {
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), c.Param("workplace_id"), c.Param("customer_id"), userID); err != nil {
		respondError(c, err, "Failed to delete customer")
		return
	}
	c.Status(http.StatusNoContent)
}
