package dto

import (
	"time"

	"github.com/SscSPs/invoice_analytics/internal/core/domain"
)

// CreateCustomerRequest defines data for creating a customer.
type CreateCustomerRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

// UpdateCustomerRequest defines the mutable fields of a customer.
type UpdateCustomerRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=255"`
}

// CustomerResponse defines data returned for a customer.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToCustomerResponse converts domain.Customer to DTO.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.CustomerID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.LastUpdatedAt,
	}
}

// ToCustomerResponses converts a slice of domain.Customer to DTOs.
func ToCustomerResponses(cs []domain.Customer) []CustomerResponse {
	list := make([]CustomerResponse, len(cs))
	for i := range cs {
		list[i] = ToCustomerResponse(&cs[i])
	}
	return list
}
