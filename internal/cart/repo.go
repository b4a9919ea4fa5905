package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redispkg "github.com/boticaviva/backend/pkg/redis"
)

// Store persists cart lines per storefront session.
type Store interface {
	Load(ctx context.Context, sessionID string) ([]Line, error)
	Save(ctx context.Context, sessionID string, lines []Line) error
	Delete(ctx context.Context, sessionID string) error
}

type redisStore struct {
	client *redispkg.Client
	ttl    time.Duration
}

// NewRedisStore builds the Redis-backed cart store. Every save refreshes the
// TTL so an active cart never expires mid-session.
func NewRedisStore(client *redispkg.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func (s *redisStore) Load(ctx context.Context, sessionID string) ([]Line, error) {
	raw, err := s.client.Get(ctx, s.client.CartKey(sessionID))
	if errors.Is(err, redispkg.ErrKeyMissing) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading cart: %w", err)
	}

	var lines []Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, fmt.Errorf("decoding cart: %w", err)
	}
	return lines, nil
}

func (s *redisStore) Save(ctx context.Context, sessionID string, lines []Line) error {
	encoded, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encoding cart: %w", err)
	}
	return s.client.Set(ctx, s.client.CartKey(sessionID), encoded, s.ttl)
}

func (s *redisStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.client.CartKey(sessionID))
}
