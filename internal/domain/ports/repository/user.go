package repository

import (
	"context"

	"marvel-tutor/internal/domain/model"
)

type UserRepository interface {
	// GetOrCreate resolves the row for u.LMSUserID, inserting u when absent.
	// Concurrent first-sight inserts must converge on a single row (unique
	// index on lms_user_id + conflict-resolution read).
	GetOrCreate(ctx context.Context, qx Tx, u *model.User) (*model.User, error)
	FindByLMSID(ctx context.Context, qx Tx, lmsUserID string) (*model.User, error)
}
