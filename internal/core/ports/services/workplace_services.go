package services

import (
	"context"

	"github.com/SscSPs/invoice_analytics/internal/core/domain"
)

// WorkplaceReaderSvc defines read operations for workplace data
type WorkplaceReaderSvc interface {
	// FindWorkplaceByID retrieves a specific workplace by its ID without authorization.
	FindWorkplaceByID(ctx context.Context, workplaceID string) (*domain.Workplace, error)

	// GetWorkplace retrieves a workplace the user is a member of.
	GetWorkplace(ctx context.Context, workplaceID, userID string) (*domain.Workplace, error)

	// ListUserWorkplaces retrieves active workplaces a user belongs to.
	ListUserWorkplaces(ctx context.Context, userID string) ([]domain.Workplace, error)
}

// WorkplaceWriterSvc defines write operations for workplace data
type WorkplaceWriterSvc interface {
	// CreateWorkplace persists a new workplace with the creator as ADMIN.
	CreateWorkplace(ctx context.Context, name, description, defaultCurrencyCode, creatorUserID string) (*domain.Workplace, error)
}

// WorkplaceMembershipSvc defines operations for managing workplace membership
type WorkplaceMembershipSvc interface {
	// AddUserToWorkplace adds a user to a workplace with a specific role. Requires ADMIN.
	AddUserToWorkplace(ctx context.Context, addingUserID, targetUserID, workplaceID string, role domain.UserWorkplaceRole) error
}

// WorkplaceAuthorizerSvc defines operations for workplace authorization
type WorkplaceAuthorizerSvc interface {
	// AuthorizeUserAction checks if a user has required permissions for a workplace.
	AuthorizeUserAction(ctx context.Context, userID, workplaceID string, requiredRole domain.UserWorkplaceRole) error
}

// WorkplaceCurrencySvc resolves the default currency in effect for a workplace.
type WorkplaceCurrencySvc interface {
	DefaultCurrency(ctx context.Context, workplaceID string) (string, error)
}

// WorkplaceSvcFacade combines all workplace-related service interfaces
// This is a facade for clients that need access to all operations
type WorkplaceSvcFacade interface {
	WorkplaceReaderSvc
	WorkplaceWriterSvc
	WorkplaceMembershipSvc
	WorkplaceAuthorizerSvc
	WorkplaceCurrencySvc
}
