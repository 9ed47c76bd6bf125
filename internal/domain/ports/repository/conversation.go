package repository

import (
	"context"

	"marvel-tutor/internal/domain/model"
)

// ConversationStore holds the session-scoped rolling history and the
// per-session turn counter. Entries expire with the session (store TTL);
// they are never explicitly destroyed by the chat flow.
type ConversationStore interface {
	// Get returns domain.ErrNotFound for an unknown session.
	Get(ctx context.Context, sessionID string) (*model.Conversation, error)
	Save(ctx context.Context, conv *model.Conversation) error
	// IncrementTurns bumps the monotonic per-session counter and returns
	// the new value. Starts at 0 for a fresh session.
	IncrementTurns(ctx context.Context, sessionID string) (int, error)
	Delete(ctx context.Context, sessionID string) error
}
