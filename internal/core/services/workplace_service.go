package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/invoice_analytics/internal/apperrors"
	"github.com/SscSPs/invoice_analytics/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_analytics/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_analytics/internal/core/ports/services"
	"github.com/SscSPs/invoice_analytics/internal/middleware"
	"github.com/google/uuid"
)

// WorkplaceService handles business logic related to workplaces and memberships.
type WorkplaceService struct {
	workplaceRepo   portsrepo.WorkplaceRepositoryFacade
	currencies      portssvc.CurrencyCatalogSvc
	defaultCurrency string
}

// NewWorkplaceService creates a new WorkplaceService. defaultCurrency applies to
// workplaces that do not set their own.
func NewWorkplaceService(wr portsrepo.WorkplaceRepositoryFacade, currencies portssvc.CurrencyCatalogSvc, defaultCurrency string) *WorkplaceService {
	return &WorkplaceService{
		workplaceRepo:   wr,
		currencies:      currencies,
		defaultCurrency: domain.NormalizeCurrency(defaultCurrency),
	}
}

var _ portssvc.WorkplaceSvcFacade = (*WorkplaceService)(nil)

// CreateWorkplace creates a new workplace and makes the creator the initial admin.
func (s *WorkplaceService) CreateWorkplace(ctx context.Context, name, description, defaultCurrencyCode, creatorUserID string) (*domain.Workplace, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("workplace name cannot be empty")
	}

	defaultCurrencyCode = domain.NormalizeCurrency(defaultCurrencyCode)
	if defaultCurrencyCode != "" && s.currencies != nil {
		if err := s.currencies.ValidateCurrency(ctx, defaultCurrencyCode); err != nil {
			logger.Warn("Invalid default currency code provided", slog.String("currency_code", defaultCurrencyCode), slog.String("error", err.Error()))
			return nil, err
		}
	}

	now := time.Now().UTC()
	workplace := domain.Workplace{
		WorkplaceID: uuid.NewString(),
		Name:        name,
		Description: description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if defaultCurrencyCode != "" {
		workplace.DefaultCurrencyCode = &defaultCurrencyCode
	}

	creator := domain.UserWorkplace{
		UserID:      creatorUserID,
		WorkplaceID: workplace.WorkplaceID,
		Role:        domain.RoleAdmin,
		JoinedAt:    now,
	}
	if err := s.workplaceRepo.SaveWorkplace(ctx, workplace, creator); err != nil {
		logger.Error("Failed to save workplace in repository", slog.String("error", err.Error()), slog.String("workplace_name", name))
		return nil, fmt.Errorf("failed to create workplace: %w", err)
	}

	logger.Info("Workplace created successfully", slog.String("workplace_id", workplace.WorkplaceID), slog.String("creator_user_id", creatorUserID))
	return &workplace, nil
}

// AddUserToWorkplace adds a user to a workplace with a specific role.
func (s *WorkplaceService) AddUserToWorkplace(ctx context.Context, addingUserID, targetUserID, workplaceID string, role domain.UserWorkplaceRole) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, addingUserID, workplaceID, domain.RoleAdmin); err != nil {
		return err
	}

	switch role {
	case domain.RoleAdmin, domain.RoleMember, domain.RoleReadOnly:
	default:
		return apperrors.NewValidationError(fmt.Sprintf("unknown role %q", role))
	}

	membership := domain.UserWorkplace{
		UserID:      targetUserID,
		WorkplaceID: workplaceID,
		Role:        role,
		JoinedAt:    time.Now().UTC(),
	}
	if err := s.workplaceRepo.AddUserToWorkplace(ctx, membership); err != nil {
		logger.Error("Failed to add user to workplace in repository", slog.String("error", err.Error()), slog.String("target_user_id", targetUserID), slog.String("workplace_id", workplaceID))
		return fmt.Errorf("failed to add user %s to workplace %s: %w", targetUserID, workplaceID, err)
	}

	logger.Info("User added to workplace successfully", slog.String("target_user_id", targetUserID), slog.String("workplace_id", workplaceID), slog.String("role", string(role)), slog.String("added_by_user_id", addingUserID))
	return nil
}

// ListUserWorkplaces retrieves the list of workplaces a given user belongs to.
func (s *WorkplaceService) ListUserWorkplaces(ctx context.Context, userID string) ([]domain.Workplace, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	workplaces, err := s.workplaceRepo.ListWorkplacesByUserID(ctx, userID)
	if err != nil {
		logger.Error("Failed to list workplaces for user from repository", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list workplaces for user %s: %w", userID, err)
	}
	if workplaces == nil {
		return []domain.Workplace{}, nil
	}

	logger.Debug("Workplaces listed successfully for user", slog.String("user_id", userID), slog.Int("count", len(workplaces)))
	return workplaces, nil
}

// FindWorkplaceByID retrieves a workplace by its ID without an authorization check.
func (s *WorkplaceService) FindWorkplaceByID(ctx context.Context, workplaceID string) (*domain.Workplace, error) {
	workplace, err := s.workplaceRepo.FindWorkplaceByID(ctx, workplaceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find workplace by ID in repository", slog.String("error", err.Error()), slog.String("workplace_id", workplaceID))
		}
		return nil, err
	}
	return workplace, nil
}

// GetWorkplace retrieves a workplace the user is a member of.
func (s *WorkplaceService) GetWorkplace(ctx context.Context, workplaceID, userID string) (*domain.Workplace, error) {
	if err := s.AuthorizeUserAction(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.FindWorkplaceByID(ctx, workplaceID)
}

// AuthorizeUserAction checks if a user has the required role (or higher) within a specific workplace.
// Returns apperrors.ErrNotFound if the workplace doesn't exist or the user is not a member,
// and apperrors.ErrForbidden if the user is a member but lacks the required role.
func (s *WorkplaceService) AuthorizeUserAction(ctx context.Context, userID, workplaceID string, requiredRole domain.UserWorkplaceRole) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	membership, err := s.workplaceRepo.FindUserWorkplaceRole(ctx, userID, workplaceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Authorization failed: workplace not found or user not a member", slog.String("user_id", userID), slog.String("workplace_id", workplaceID))
			return apperrors.NewNotFoundError(fmt.Sprintf("Workplace with id %s not found", workplaceID))
		}
		logger.Error("Failed to check user workplace role in repository", slog.String("error", err.Error()), slog.String("user_id", userID), slog.String("workplace_id", workplaceID))
		return fmt.Errorf("failed to check authorization: %w", err)
	}

	if membership.Role.Satisfies(requiredRole) {
		return nil
	}

	logger.Warn("Authorization failed: user lacks required role", slog.String("user_id", userID), slog.String("workplace_id", workplaceID), slog.String("user_role", string(membership.Role)), slog.String("required_role", string(requiredRole)))
	return apperrors.NewAppError(403, fmt.Sprintf("role %s required", requiredRole), apperrors.ErrForbidden)
}

// DefaultCurrency returns the workplace's own default currency, or the process-wide one.
func (s *WorkplaceService) DefaultCurrency(ctx context.Context, workplaceID string) (string, error) {
	workplace, err := s.FindWorkplaceByID(ctx, workplaceID)
	if err != nil {
		return "", err
	}
	return domain.NormalizeCurrency(workplace.EffectiveDefaultCurrency(s.defaultCurrency)), nil
}
