package pgsql

import (
	"errors"

	"github.com/SscSPs/invoice_analytics/internal/apperrors"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// mapWriteError translates constraint violations into application errors.
// Anything else is wrapped as an internal error with msg.
func mapWriteError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return apperrors.NewConflictError(msg + ": already exists")
		case pgerrcode.ForeignKeyViolation:
			return apperrors.NewNotFoundError(msg + ": referenced resource not found")
		case pgerrcode.CheckViolation, pgerrcode.NotNullViolation, pgerrcode.StringDataRightTruncationDataException, pgerrcode.NumericValueOutOfRange:
			return apperrors.NewValidationError(msg + ": " + pgErr.Message)
		case pgerrcode.InvalidTextRepresentation:
			return apperrors.NewValidationError(msg + ": malformed identifier")
		}
	}
	return apperrors.NewAppError(500, msg, err)
}

// mapReadError maps malformed identifiers (e.g. a non-uuid id) to not-found.
func mapReadError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.InvalidTextRepresentation {
		return apperrors.NewNotFoundError(msg + ": not found")
	}
	return apperrors.NewAppError(500, msg, err)
}
