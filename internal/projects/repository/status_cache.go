package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/digitallaunch/launchpad-backend/internal/projects/domain"
)

const (
	statusKeyPrefix   = "launchpad:project:" // status snapshot: launchpad:project:{id}:status
	statusEventPrefix = "launchpad:events:"  // pub/sub channel per project: launchpad:events:{id}
	statusTTL         = 24 * time.Hour
	terminalStatusTTL = 7 * 24 * time.Hour // terminal snapshots linger for late pollers
)

// ErrStatusCacheMiss is returned when no snapshot is cached; callers fall
// back to the database.
var ErrStatusCacheMiss = errors.New("status not cached")

// StatusCache keeps the latest status snapshot per project in Redis so
// the 2-second poll loop stays off the database, and publishes each
// transition on a per-project channel.
type StatusCache struct {
	client *redis.Client
}

func NewStatusCache(client *redis.Client) *StatusCache {
	return &StatusCache{client: client}
}

// Set stores the snapshot and publishes it as a transition event.
func (c *StatusCache) Set(ctx context.Context, snap domain.StatusSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal status snapshot: %w", err)
	}

	ttl := statusTTL
	if snap.Status.Terminal() {
		ttl = terminalStatusTTL
	}

	pipe := c.client.Pipeline()
	pipe.Set(ctx, c.statusKey(snap.ProjectID), data, ttl)
	pipe.Publish(ctx, c.eventChannel(snap.ProjectID), data)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache status: %w", err)
	}
	return nil
}

// Get returns the cached snapshot or ErrStatusCacheMiss.
func (c *StatusCache) Get(ctx context.Context, id uuid.UUID) (domain.StatusSnapshot, error) {
	data, err := c.client.Get(ctx, c.statusKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.StatusSnapshot{}, ErrStatusCacheMiss
	}
	if err != nil {
		return domain.StatusSnapshot{}, fmt.Errorf("get cached status: %w", err)
	}

	var snap domain.StatusSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return domain.StatusSnapshot{}, fmt.Errorf("decode cached status: %w", err)
	}
	return snap, nil
}

func (c *StatusCache) statusKey(id uuid.UUID) string {
	return fmt.Sprintf("%s%s:status", statusKeyPrefix, id)
}

func (c *StatusCache) eventChannel(id uuid.UUID) string {
	return fmt.Sprintf("%s%s", statusEventPrefix, id)
}
