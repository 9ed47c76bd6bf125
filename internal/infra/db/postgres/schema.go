package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
)

// EnsureSchema creates the durable history tables. The unique indexes on
// lms_user_id / lms_course_id are what make get-or-create race-safe:
// concurrent first-sight inserts conflict and converge on one row.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS users (
  id          TEXT PRIMARY KEY,
  lms_user_id TEXT NOT NULL,
  name        TEXT NOT NULL DEFAULT '',
  role        TEXT NOT NULL DEFAULT 'Learner',
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS users_lms_user_id_key ON users (lms_user_id);

CREATE TABLE IF NOT EXISTS courses (
  id            TEXT PRIMARY KEY,
  lms_course_id TEXT NOT NULL,
  title         TEXT NOT NULL DEFAULT '',
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS courses_lms_course_id_key ON courses (lms_course_id);

CREATE TABLE IF NOT EXISTS messages (
  id        TEXT PRIMARY KEY,
  user_id   TEXT NOT NULL REFERENCES users(id),
  course_id TEXT NOT NULL REFERENCES courses(id),
  role      TEXT NOT NULL,
  content   TEXT NOT NULL,
  ts        TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS messages_user_ts_idx ON messages (user_id, ts DESC);
CREATE INDEX IF NOT EXISTS messages_course_ts_idx ON messages (course_id, ts DESC);
`
	_, err := pool.Exec(ctx, ddl)
	return err
}
