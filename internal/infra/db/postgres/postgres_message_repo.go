package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"marvel-tutor/internal/domain/model"
	"marvel-tutor/internal/domain/ports/repository"
	"marvel-tutor/internal/infra/metrics"
)

var _ repository.MessageRepository = (*PostgresMessageRepo)(nil)

// PostgresMessageRepo is the append-only message log. Rows are never
// updated or deleted by the application.
type PostgresMessageRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresMessageRepo(pool *pgxpool.Pool) *PostgresMessageRepo {
	return &PostgresMessageRepo{pool: pool}
}

func (r *PostgresMessageRepo) Insert(ctx context.Context, qx repository.Tx, m *model.Message) error {
	const q = `
INSERT INTO messages (id, user_id, course_id, role, content, ts)
VALUES ($1,$2,$3,$4,$5,$6);
`
	ex, err := executor(r.pool, qx)
	if err != nil {
		return err
	}
	start := time.Now()
	_, err = ex.Exec(ctx, q, m.ID, m.UserID, m.CourseID, m.Role, m.Content, m.Timestamp)
	metrics.ObserveDBQuery("messages", "insert", float64(time.Since(start).Milliseconds()))
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func (r *PostgresMessageRepo) ListByUser(ctx context.Context, qx repository.Tx, userID string, limit int) ([]*model.Message, error) {
	const q = `
SELECT id, user_id, course_id, role, content, ts
  FROM messages WHERE user_id=$1
 ORDER BY ts DESC LIMIT $2;
`
	return r.list(ctx, qx, "list_by_user", q, userID, limit)
}

func (r *PostgresMessageRepo) ListByCourse(ctx context.Context, qx repository.Tx, courseID string, limit int) ([]*model.Message, error) {
	const q = `
SELECT id, user_id, course_id, role, content, ts
  FROM messages WHERE course_id=$1
 ORDER BY ts DESC LIMIT $2;
`
	return r.list(ctx, qx, "list_by_course", q, courseID, limit)
}

func (r *PostgresMessageRepo) list(ctx context.Context, qx repository.Tx, op, q string, args ...interface{}) ([]*model.Message, error) {
	ex, err := executor(r.pool, qx)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	rows, err := ex.Query(ctx, q, args...)
	metrics.ObserveDBQuery("messages", op, float64(time.Since(start).Milliseconds()))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.UserID, &m.CourseID, &m.Role, &m.Content, &m.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	if err := rows.Err(); err != nil && err != pgx.ErrNoRows {
		return nil, err
	}
	return out, nil
}
