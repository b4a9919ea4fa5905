package catalog

import (
	"context"
	"time"

	redispkg "github.com/boticaviva/backend/pkg/redis"
)

const selectionTTL = 12 * time.Hour

// SelectionStore holds the admin's staged product selection between page
// loads. Publishing applies to whatever the set holds at that moment.
type SelectionStore interface {
	Select(ctx context.Context, adminSessionID string, productIDs ...string) error
	Deselect(ctx context.Context, adminSessionID string, productIDs ...string) error
	Clear(ctx context.Context, adminSessionID string) error
	Selection(ctx context.Context, adminSessionID string) ([]string, error)
}

type redisSelectionStore struct {
	client *redispkg.Client
}

// NewSelectionStore builds the Redis-backed staging selection.
func NewSelectionStore(client *redispkg.Client) SelectionStore {
	return &redisSelectionStore{client: client}
}

func (s *redisSelectionStore) Select(ctx context.Context, adminSessionID string, productIDs ...string) error {
	return s.client.SAdd(ctx, s.client.SelectionKey(adminSessionID), selectionTTL, productIDs...)
}

func (s *redisSelectionStore) Deselect(ctx context.Context, adminSessionID string, productIDs ...string) error {
	return s.client.SRem(ctx, s.client.SelectionKey(adminSessionID), productIDs...)
}

func (s *redisSelectionStore) Clear(ctx context.Context, adminSessionID string) error {
	return s.client.Del(ctx, s.client.SelectionKey(adminSessionID))
}

func (s *redisSelectionStore) Selection(ctx context.Context, adminSessionID string) ([]string, error) {
	return s.client.SMembers(ctx, s.client.SelectionKey(adminSessionID))
}
