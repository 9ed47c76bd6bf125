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

var _ repository.CourseRepository = (*PostgresCourseRepo)(nil)

type PostgresCourseRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresCourseRepo(pool *pgxpool.Pool) *PostgresCourseRepo {
	return &PostgresCourseRepo{pool: pool}
}

func (r *PostgresCourseRepo) GetOrCreate(ctx context.Context, qx repository.Tx, c *model.Course) (*model.Course, error) {
	const ins = `
INSERT INTO courses (id, lms_course_id, title, created_at)
VALUES ($1,$2,$3,$4)
ON CONFLICT (lms_course_id) DO NOTHING;
`
	ex, err := executor(r.pool, qx)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	if _, err := ex.Exec(ctx, ins, c.ID, c.LMSCourseID, c.Title, c.CreatedAt); err != nil {
		return nil, err
	}
	out, err := r.FindByLMSID(ctx, qx, c.LMSCourseID)
	metrics.ObserveDBQuery("courses", "get_or_create", float64(time.Since(start).Milliseconds()))
	return out, err
}

func (r *PostgresCourseRepo) FindByLMSID(ctx context.Context, qx repository.Tx, lmsCourseID string) (*model.Course, error) {
	const q = `
SELECT id, lms_course_id, title, created_at
  FROM courses WHERE lms_course_id=$1;
`
	ex, err := executor(r.pool, qx)
	if err != nil {
		return nil, err
	}
	var c model.Course
	if err := ex.QueryRow(ctx, q, lmsCourseID).Scan(&c.ID, &c.LMSCourseID, &c.Title, &c.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}
