package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/invoice_analytics/internal/apperrors"
	"github.com/SscSPs/invoice_analytics/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_analytics/internal/core/ports/repositories"
	"github.com/SscSPs/invoice_analytics/internal/models"
	"github.com/SscSPs/invoice_analytics/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCustomerRepository struct {
	BaseRepository
}

func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

const customerSelectQuery = `
SELECT
	c.customer_id, c.workplace_id, c.name, c.deleted_at,
	c.created_at, c.created_by, c.last_updated_at, c.last_updated_by
FROM customers c
`

func (r *PgxCustomerRepository) getCustomers(ctx context.Context, filterQuery string, args ...any) ([]domain.Customer, error) {
	rows, err := r.Pool.Query(ctx, customerSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, mapReadError(err, "failed to query customers")
	}
	defer rows.Close()

	modelCustomers, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Customer])
	if err != nil {
		return nil, mapReadError(err, "failed to collect customer rows")
	}
	return mapping.ToDomainCustomers(modelCustomers), nil
}

func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO customers (
			customer_id, workplace_id, name,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7);`,
		m.CustomerID, m.WorkplaceID, m.Name,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "failed to save customer "+customer.CustomerID)
	}
	return nil
}

func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, workplaceID, customerID string) (*domain.Customer, error) {
	customers, err := r.getCustomers(ctx, `WHERE c.workplace_id = $1 AND c.customer_id = $2`, workplaceID, customerID)
	if err != nil {
		return nil, err
	}
	if len(customers) == 0 {
		return nil, apperrors.NewNotFoundError("customer " + customerID + " not found")
	}
	return &customers[0], nil
}

func (r *PgxCustomerRepository) ListCustomers(ctx context.Context, workplaceID string, page domain.Page) ([]domain.Customer, error) {
	page = page.Normalize()
	return r.getCustomers(ctx, `
		WHERE c.workplace_id = $1 AND c.deleted_at IS NULL
		ORDER BY c.created_at, c.customer_id
		OFFSET $2 LIMIT $3`, workplaceID, page.Skip, page.Limit)
}

func (r *PgxCustomerRepository) FindFirstCustomerByName(ctx context.Context, workplaceID, namePart string) (*domain.Customer, error) {
	customers, err := r.getCustomers(ctx, `
		WHERE c.workplace_id = $1 AND c.deleted_at IS NULL
		AND c.name ILIKE '%' || $2 || '%'
		ORDER BY c.created_at, c.customer_id
		LIMIT 1`, workplaceID, escapeLike(namePart))
	if err != nil {
		return nil, err
	}
	if len(customers) == 0 {
		return nil, apperrors.NewNotFoundError("no customer matching " + namePart)
	}
	return &customers[0], nil
}

func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE customers
		SET name = $1, last_updated_at = $2, last_updated_by = $3
		WHERE workplace_id = $4 AND customer_id = $5 AND deleted_at IS NULL;`,
		customer.Name, customer.LastUpdatedAt, customer.LastUpdatedBy, customer.WorkplaceID, customer.CustomerID,
	)
	if err != nil {
		return mapWriteError(err, "failed to update customer "+customer.CustomerID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("customer " + customer.CustomerID + " not found")
	}
	return nil
}

func (r *PgxCustomerRepository) SoftDeleteCustomer(ctx context.Context, workplaceID, customerID string, deletedAt time.Time, deletedBy string) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE customers
			SET deleted_at = $1, last_updated_at = $1, last_updated_by = $2
			WHERE workplace_id = $3 AND customer_id = $4 AND deleted_at IS NULL;`,
			deletedAt, deletedBy, workplaceID, customerID,
		)
		if err != nil {
			return mapWriteError(err, "failed to delete customer "+customerID)
		}
		if tag.RowsAffected() == 0 {
			return r.missingOrDeleted(ctx, tx, workplaceID, customerID)
		}

		if _, err := tx.Exec(ctx, `
			UPDATE invoices
			SET deleted_at = $1, last_updated_at = $1, last_updated_by = $2
			WHERE workplace_id = $3 AND customer_id = $4 AND deleted_at IS NULL;`,
			deletedAt, deletedBy, workplaceID, customerID,
		); err != nil {
			return mapWriteError(err, "failed to cascade delete to invoices of customer "+customerID)
		}
		return nil
	})
}

// missingOrDeleted distinguishes why a guarded update touched no rows.
func (r *PgxCustomerRepository) missingOrDeleted(ctx context.Context, tx pgx.Tx, workplaceID, customerID string) error {
	var deletedAt *time.Time
	err := tx.QueryRow(ctx,
		`SELECT deleted_at FROM customers WHERE workplace_id = $1 AND customer_id = $2`,
		workplaceID, customerID,
	).Scan(&deletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFoundError("customer " + customerID + " not found")
	}
	if err != nil {
		return mapReadError(err, "failed to check customer "+customerID)
	}
	return apperrors.NewAlreadyDeletedError("customer " + customerID + " is already deleted")
}
