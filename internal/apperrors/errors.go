package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrAlreadyDeleted indicates the resource exists but has been soft-deleted.
var ErrAlreadyDeleted = errors.New("resource already deleted")

// ErrInvalidCurrency indicates a currency code that is malformed or not supported by the pricing provider.
var ErrInvalidCurrency = errors.New("invalid currency code")

// ErrForbidden indicates the caller lacks the role required for the action.
var ErrForbidden = errors.New("forbidden")

// ErrUpstreamTimeout indicates the pricing provider did not answer in time.
var ErrUpstreamTimeout = errors.New("exchange rate service timeout")

// ErrUpstreamUnavailable indicates the pricing provider could not be reached.
var ErrUpstreamUnavailable = errors.New("exchange rate service unavailable")

// ErrUpstreamBusiness indicates the pricing provider answered with a structured error.
var ErrUpstreamBusiness = errors.New("exchange rate service error")

// AppError carries an HTTP-ish status code and a caller-facing message on top of a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps err with a status code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

func NewAlreadyDeletedError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrAlreadyDeleted}
}

func NewValidationError(message string) *AppError {
	return &AppError{Code: http.StatusUnprocessableEntity, Message: message, Err: ErrValidation}
}

func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message, Err: ErrDuplicate}
}

func NewInvalidCurrencyError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrInvalidCurrency}
}

// NewUpstreamBusinessError keeps the provider's own error text as the message.
func NewUpstreamBusinessError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrUpstreamBusiness}
}

// Message returns the caller-facing message of the first AppError in err's chain,
// or err.Error() when there is none.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return err.Error()
}
