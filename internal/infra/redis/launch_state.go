package redis

import (
	"context"
	"time"

	"marvel-tutor/internal/domain"
)

// LaunchStateStore holds the state-to-nonce binding minted at OIDC login so
// the subsequent launch can prove it answers our request. Entries are
// single-use and short-lived.
type LaunchStateStore struct {
	client RedisClient
	ttl    time.Duration
}

func NewLaunchStateStore(client RedisClient) *LaunchStateStore {
	return &LaunchStateStore{
		client: client,
		ttl:    5 * time.Minute, // a login that takes longer has gone stale
	}
}

func stateKey(state string) string { return "lti_state:" + state }

func (s *LaunchStateStore) Save(ctx context.Context, state, nonce string) error {
	return s.client.Set(ctx, stateKey(state), nonce, s.ttl)
}

// Consume returns the nonce bound to state and deletes the entry, so a
// replayed launch with the same state fails.
func (s *LaunchStateStore) Consume(ctx context.Context, state string) (string, error) {
	nonce, err := s.client.Get(ctx, stateKey(state))
	if err != nil {
		if IsNil(err) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	if err := s.client.Del(ctx, stateKey(state)); err != nil {
		return "", err
	}
	return nonce, nil
}
