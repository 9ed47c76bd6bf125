package repository

import (
	"context"

	"marvel-tutor/internal/domain/model"
)

type MessageRepository interface {
	Insert(ctx context.Context, qx Tx, m *model.Message) error
	// ListByUser returns the user's newest messages first.
	ListByUser(ctx context.Context, qx Tx, userID string, limit int) ([]*model.Message, error)
	// ListByCourse returns the course's newest messages first.
	ListByCourse(ctx context.Context, qx Tx, courseID string, limit int) ([]*model.Message, error)
}
