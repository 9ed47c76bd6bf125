package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"marvel-tutor/internal/domain"
	"marvel-tutor/internal/domain/model"
	"marvel-tutor/internal/domain/ports/repository"
	"marvel-tutor/internal/infra/metrics"
)

var _ repository.UserRepository = (*PostgresUserRepo)(nil)

type PostgresUserRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepo(pool *pgxpool.Pool) *PostgresUserRepo {
	return &PostgresUserRepo{pool: pool}
}

// GetOrCreate is upsert-on-first-sight: insert loses quietly against the
// unique index, then the surviving row is read back. Name and role are
// never updated after first sight.
func (r *PostgresUserRepo) GetOrCreate(ctx context.Context, qx repository.Tx, u *model.User) (*model.User, error) {
	const ins = `
INSERT INTO users (id, lms_user_id, name, role, created_at)
VALUES ($1,$2,$3,$4,$5)
ON CONFLICT (lms_user_id) DO NOTHING;
`
	ex, err := executor(r.pool, qx)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	if _, err := ex.Exec(ctx, ins, u.ID, u.LMSUserID, u.Name, u.Role, u.CreatedAt); err != nil {
		return nil, err
	}
	out, err := r.FindByLMSID(ctx, qx, u.LMSUserID)
	metrics.ObserveDBQuery("users", "get_or_create", float64(time.Since(start).Milliseconds()))
	return out, err
}

func (r *PostgresUserRepo) FindByLMSID(ctx context.Context, qx repository.Tx, lmsUserID string) (*model.User, error) {
	const q = `
SELECT id, lms_user_id, name, role, created_at
  FROM users WHERE lms_user_id=$1;
`
	ex, err := executor(r.pool, qx)
	if err != nil {
		return nil, err
	}
	var u model.User
	if err := ex.QueryRow(ctx, q, lmsUserID).Scan(&u.ID, &u.LMSUserID, &u.Name, &u.Role, &u.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
