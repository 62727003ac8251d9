package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/invoice_analytics/internal/apperrors"
	"github.com/SscSPs/invoice_analytics/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

var errorKinds = []struct {
	target error
	status int
	code   string
}{
	{apperrors.ErrNotFound, http.StatusNotFound, "not_found"},
	{apperrors.ErrAlreadyDeleted, http.StatusBadRequest, "already_deleted"},
	{apperrors.ErrInvalidCurrency, http.StatusBadRequest, "invalid_currency"},
	{apperrors.ErrValidation, http.StatusUnprocessableEntity, "validation_error"},
	{apperrors.ErrUpstreamTimeout, http.StatusGatewayTimeout, "upstream_timeout"},
	{apperrors.ErrUpstreamUnavailable, http.StatusServiceUnavailable, "upstream_unavailable"},
	{apperrors.ErrUpstreamBusiness, http.StatusBadRequest, "upstream_error"},
	{apperrors.ErrForbidden, http.StatusForbidden, "forbidden"},
	{apperrors.ErrDuplicate, http.StatusConflict, "conflict"},
}

// respondError maps a service error to its status code. Unknown errors are
// logged and answered with fallback as a 500.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	for _, kind := range errorKinds {
		if errors.Is(err, kind.target) {
			logger.Warn("Request failed", slog.String("code", kind.code), slog.String("error", err.Error()))
			c.JSON(kind.status, ErrorResponse{Error: apperrors.Message(err), Code: kind.code})
			return
		}
	}
	logger.Error(fallback, slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback, Code: "internal_error"})
}

// respondBindError answers a request whose body or query failed to bind.
func respondBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fieldMessage(fe))
		}
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: strings.Join(msgs, "; "), Code: "validation_error"})
		return
	}
	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "Invalid request format: " + err.Error(), Code: "validation_error"})
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", fe.Field(), fe.Param())
	case "min", "max":
		return fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag())
	}
}

// requestUser returns the authenticated caller, answering 401 when there is none.
func requestUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized", Code: "unauthorized"})
		return "", false
	}
	return userID, true
}
