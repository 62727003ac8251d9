package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/invoice_analytics/internal/apperrors"
	"github.com/SscSPs/invoice_analytics/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_analytics/internal/core/ports/repositories"
	"github.com/SscSPs/invoice_analytics/internal/models"
	"github.com/SscSPs/invoice_analytics/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxWorkplaceRepository struct {
	BaseRepository
}

// newPgxWorkplaceRepository creates a new repository for workplace data.
func newPgxWorkplaceRepository(pool *pgxpool.Pool) portsrepo.WorkplaceRepositoryFacade {
	return &PgxWorkplaceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxWorkplaceRepository implements portsrepo.WorkplaceRepositoryFacade
var _ portsrepo.WorkplaceRepositoryFacade = (*PgxWorkplaceRepository)(nil)

const workplaceSelectQuery = `
SELECT
	w.workplace_id, w.name, w.description, w.default_currency_code, w.is_active,
	w.created_at, w.created_by, w.last_updated_at, w.last_updated_by
FROM workplaces w
`

func (r *PgxWorkplaceRepository) getWorkplaces(ctx context.Context, filterQuery string, args ...any) ([]domain.Workplace, error) {
	rows, err := r.Pool.Query(ctx, workplaceSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, mapReadError(err, "failed to query workplaces")
	}
	defer rows.Close()

	modelWorkplaces, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Workplace])
	if err != nil {
		return nil, mapReadError(err, "failed to collect workplace rows")
	}

	out := make([]domain.Workplace, len(modelWorkplaces))
	for i, m := range modelWorkplaces {
		out[i] = mapping.ToDomainWorkplace(m)
	}
	return out, nil
}

func (r *PgxWorkplaceRepository) SaveWorkplace(ctx context.Context, workplace domain.Workplace, creator domain.UserWorkplace) error {
	m := mapping.ToModelWorkplace(workplace)
	return r.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO workplaces (
				workplace_id, name, description, default_currency_code, is_active,
				created_at, created_by, last_updated_at, last_updated_by
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
			m.WorkplaceID, m.Name, m.Description, m.DefaultCurrencyCode, m.IsActive,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
		if err != nil {
			return mapWriteError(err, "failed to save workplace "+workplace.WorkplaceID)
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO user_workplaces (user_id, workplace_id, role, joined_at)
			VALUES ($1, $2, $3, $4);`,
			creator.UserID, creator.WorkplaceID, string(creator.Role), creator.JoinedAt,
		); err != nil {
			return mapWriteError(err, "failed to add creator to workplace "+workplace.WorkplaceID)
		}
		return nil
	})
}

func (r *PgxWorkplaceRepository) FindWorkplaceByID(ctx context.Context, workplaceID string) (*domain.Workplace, error) {
	workplaces, err := r.getWorkplaces(ctx, `WHERE w.workplace_id = $1`, workplaceID)
	if err != nil {
		return nil, err
	}
	if len(workplaces) == 0 {
		return nil, apperrors.NewNotFoundError("workplace " + workplaceID + " not found")
	}
	return &workplaces[0], nil
}

func (r *PgxWorkplaceRepository) ListWorkplacesByUserID(ctx context.Context, userID string) ([]domain.Workplace, error) {
	return r.getWorkplaces(ctx, `
		JOIN user_workplaces uw ON w.workplace_id = uw.workplace_id
		WHERE uw.user_id = $1 AND w.is_active = true
		ORDER BY w.name;`, userID)
}

func (r *PgxWorkplaceRepository) AddUserToWorkplace(ctx context.Context, membership domain.UserWorkplace) error {
	// Upsert: add the user or update their role if they are already a member.
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO user_workplaces (user_id, workplace_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, workplace_id) DO UPDATE SET role = EXCLUDED.role;`,
		membership.UserID, membership.WorkplaceID, string(membership.Role), membership.JoinedAt,
	)
	if err != nil {
		return mapWriteError(err, "failed to add user "+membership.UserID+" to workplace "+membership.WorkplaceID)
	}
	return nil
}

func (r *PgxWorkplaceRepository) FindUserWorkplaceRole(ctx context.Context, userID, workplaceID string) (*domain.UserWorkplace, error) {
	var m models.UserWorkplace
	err := r.Pool.QueryRow(ctx, `
		SELECT uw.user_id, uw.workplace_id, uw.role, uw.joined_at
		FROM user_workplaces uw
		JOIN workplaces w ON w.workplace_id = uw.workplace_id
		WHERE uw.user_id = $1 AND uw.workplace_id = $2 AND w.is_active = true;`,
		userID, workplaceID,
	).Scan(&m.UserID, &m.WorkplaceID, &m.Role, &m.JoinedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("workplace not found")
		}
		return nil, mapReadError(err, "failed to find user "+userID+" role in workplace "+workplaceID)
	}

	uw := mapping.ToDomainUserWorkplace(m)
	return &uw, nil
}
