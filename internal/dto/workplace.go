package dto

import (
	"time"

	"github.com/SscSPs/invoice_analytics/internal/core/domain"
)

// --- Workplace DTOs ---

// CreateWorkplaceRequest defines data for creating a new workplace.
type CreateWorkplaceRequest struct {
	Name                string `json:"name" binding:"required,min=1,max=255"`
	Description         string `json:"description"`
	DefaultCurrencyCode string `json:"default_currency_code" binding:"omitempty,len=3,alpha"`
}

// WorkplaceResponse defines data returned for a workplace.
type WorkplaceResponse struct {
	WorkplaceID         string    `json:"workplace_id"`
	Name                string    `json:"name"`
	Description         string    `json:"description"`
	DefaultCurrencyCode *string   `json:"default_currency_code,omitempty"`
	IsActive            bool      `json:"is_active"`
	CreatedAt           time.Time `json:"created_at"`
	CreatedBy           string    `json:"created_by"`
}

// ToWorkplaceResponse converts domain.Workplace to DTO.
func ToWorkplaceResponse(w *domain.Workplace) WorkplaceResponse {
	return WorkplaceResponse{
		WorkplaceID:         w.WorkplaceID,
		Name:                w.Name,
		Description:         w.Description,
		DefaultCurrencyCode: w.DefaultCurrencyCode,
		IsActive:            w.IsActive,
		CreatedAt:           w.CreatedAt,
		CreatedBy:           w.CreatedBy,
	}
}

// ListWorkplacesResponse wraps a list of workplaces.
type ListWorkplacesResponse struct {
	Workplaces []WorkplaceResponse `json:"workplaces"`
}

// ToListWorkplacesResponse converts a slice of domain.Workplace to DTO.
func ToListWorkplacesResponse(ws []domain.Workplace) ListWorkplacesResponse {
	list := make([]WorkplaceResponse, len(ws))
	for i := range ws {
		list[i] = ToWorkplaceResponse(&ws[i])
	}
	return ListWorkplacesResponse{Workplaces: list}
}

// --- User Workplace Membership DTOs ---

// AddUserToWorkplaceRequest defines data for adding a user to a workplace.
type AddUserToWorkplaceRequest struct {
	UserID string                   `json:"user_id" binding:"required"`
	Role   domain.UserWorkplaceRole `json:"role" binding:"required,oneof=ADMIN MEMBER READONLY"`
}
