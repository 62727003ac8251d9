package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/invoice_analytics/internal/apperrors"
	"github.com/SscSPs/invoice_analytics/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_analytics/internal/core/ports/repositories"
	"github.com/SscSPs/invoice_analytics/internal/models"
	"github.com/SscSPs/invoice_analytics/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceSelectQuery = `
SELECT
	i.invoice_id, i.workplace_id, i.customer_id, i.amount, i.currency, i.default_currency,
	i.amount_in_default_currency, i.exchange_rate, i.deleted_at,
	i.created_at, i.created_by, i.last_updated_at, i.last_updated_by
FROM invoices i
`

func (r *PgxInvoiceRepository) getInvoices(ctx context.Context, filterQuery string, args ...any) ([]domain.Invoice, error) {
	rows, err := r.Pool.Query(ctx, invoiceSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, mapReadError(err, "failed to query invoices")
	}
	defer rows.Close()

	modelInvoices, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Invoice])
	if err != nil {
		return nil, mapReadError(err, "failed to collect invoice rows")
	}
	return mapping.ToDomainInvoices(modelInvoices), nil
}

// buildInvoiceFilter renders the WHERE clause for non-deleted invoices matching filter.
func buildInvoiceFilter(filter domain.InvoiceFilter) (string, []any) {
	conds := []string{"i.workplace_id = $1", "i.deleted_at IS NULL"}
	args := []any{filter.WorkplaceID}

	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		conds = append(conds, fmt.Sprintf("i.customer_id = $%d", len(args)))
	}
	if filter.Start != nil {
		args = append(args, *filter.Start)
		conds = append(conds, fmt.Sprintf("i.created_at >= $%d", len(args)))
	}
	if filter.End != nil {
		args = append(args, *filter.End)
		conds = append(conds, fmt.Sprintf("i.created_at <= $%d", len(args)))
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO invoices (
			invoice_id, workplace_id, customer_id, amount, currency, default_currency,
			amount_in_default_currency, exchange_rate,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`,
		m.InvoiceID, m.WorkplaceID, m.CustomerID, m.Amount, m.Currency, m.DefaultCurrency,
		m.AmountInDefaultCurrency, m.ExchangeRate,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "failed to save invoice "+invoice.InvoiceID)
	}
	return nil
}

func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, workplaceID, invoiceID string) (*domain.Invoice, error) {
	invoices, err := r.getInvoices(ctx, `WHERE i.workplace_id = $1 AND i.invoice_id = $2`, workplaceID, invoiceID)
	if err != nil {
		return nil, err
	}
	if len(invoices) == 0 {
		return nil, apperrors.NewNotFoundError("invoice " + invoiceID + " not found")
	}
	return &invoices[0], nil
}

func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, filter domain.InvoiceFilter, page domain.Page) ([]domain.Invoice, error) {
	page = page.Normalize()
	where, args := buildInvoiceFilter(filter)
	args = append(args, page.Skip, page.Limit)
	query := fmt.Sprintf("%s ORDER BY i.created_at, i.invoice_id OFFSET $%d LIMIT $%d", where, len(args)-1, len(args))
	return r.getInvoices(ctx, query, args...)
}

func (r *PgxInvoiceRepository) ListAllInvoices(ctx context.Context, filter domain.InvoiceFilter) ([]domain.Invoice, error) {
	where, args := buildInvoiceFilter(filter)
	return r.getInvoices(ctx, where+" ORDER BY i.created_at, i.invoice_id", args...)
}

func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE invoices
		SET amount = $1, currency = $2, amount_in_default_currency = $3, exchange_rate = $4,
			last_updated_at = $5, last_updated_by = $6
		WHERE workplace_id = $7 AND invoice_id = $8 AND deleted_at IS NULL;`,
		m.Amount, m.Currency, m.AmountInDefaultCurrency, m.ExchangeRate,
		m.LastUpdatedAt, m.LastUpdatedBy, m.WorkplaceID, m.InvoiceID,
	)
	if err != nil {
		return mapWriteError(err, "failed to update invoice "+invoice.InvoiceID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("invoice " + invoice.InvoiceID + " not found")
	}
	return nil
}

func (r *PgxInvoiceRepository) SoftDeleteInvoice(ctx context.Context, workplaceID, invoiceID string, deletedAt time.Time, deletedBy string) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE invoices
		SET deleted_at = $1, last_updated_at = $1, last_updated_by = $2
		WHERE workplace_id = $3 AND invoice_id = $4 AND deleted_at IS NULL;`,
		deletedAt, deletedBy, workplaceID, invoiceID,
	)
	if err != nil {
		return mapWriteError(err, "failed to delete invoice "+invoiceID)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var existing *time.Time
	err = r.Pool.QueryRow(ctx,
		`SELECT deleted_at FROM invoices WHERE workplace_id = $1 AND invoice_id = $2`,
		workplaceID, invoiceID,
	).Scan(&existing)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFoundError("invoice " + invoiceID + " not found")
	}
	if err != nil {
		return mapReadError(err, "failed to check invoice "+invoiceID)
	}
	return apperrors.NewAlreadyDeletedError("invoice " + invoiceID + " is already deleted")
}
