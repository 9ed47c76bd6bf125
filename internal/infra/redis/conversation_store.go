package redis

import (
	"context"
	"encoding/json"
	"time"

	"marvel-tutor/internal/domain"
	"marvel-tutor/internal/domain/model"
	"marvel-tutor/internal/domain/ports/repository"
)

var _ repository.ConversationStore = (*ConversationStore)(nil)

// ConversationStore keeps each session's rolling history and turn counter
// in Redis. Both keys share the session TTL, so a conversation expires with
// its session rather than being explicitly destroyed.
type ConversationStore struct {
	client RedisClient
	ttl    time.Duration
}

func NewConversationStore(client RedisClient, ttl time.Duration) *ConversationStore {
	return &ConversationStore{client: client, ttl: ttl}
}

func convKey(sessionID string) string  { return "conv:" + sessionID }
func turnsKey(sessionID string) string { return "conv:" + sessionID + ":turns" }

func (s *ConversationStore) Get(ctx context.Context, sessionID string) (*model.Conversation, error) {
	data, err := s.client.Get(ctx, convKey(sessionID))
	if err != nil {
		if IsNil(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	var conv model.Conversation
	if err := json.Unmarshal([]byte(data), &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

func (s *ConversationStore) Save(ctx context.Context, conv *model.Conversation) error {
	data, err := json.Marshal(conv)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, convKey(conv.SessionID), data, s.ttl)
}

func (s *ConversationStore) IncrementTurns(ctx context.Context, sessionID string) (int, error) {
	n, err := s.client.Incr(ctx, turnsKey(sessionID))
	if err != nil {
		return 0, err
	}
	// Counter expires alongside the conversation.
	if err := s.client.Expire(ctx, turnsKey(sessionID), s.ttl); err != nil {
		return int(n), err
	}
	return int(n), nil
}

func (s *ConversationStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, convKey(sessionID), turnsKey(sessionID))
}
