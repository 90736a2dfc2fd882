package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusclubs/club-blog-service/internal/domain"
)

// AdminActionRepository appends immutable audit records. There is no read
// path from business logic.
type AdminActionRepository interface {
	Append(ctx context.Context, action *domain.AdminAction) error
}

type adminActionRepository struct {
	pool *pgxpool.Pool
}

// NewAdminActionRepository returns a Postgres-backed implementation.
func NewAdminActionRepository(pool *pgxpool.Pool) AdminActionRepository {
	return &adminActionRepository{pool: pool}
}

func (r *adminActionRepository) Append(ctx context.Context, action *domain.AdminAction) error {
	const query = `
        INSERT INTO admin_actions (admin_id, action, target_type, target_id, description)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		action.AdminID,
		action.Action,
		action.TargetType,
		action.TargetID,
		action.Description,
	).Scan(&action.ID, &action.CreatedAt)
}
