package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digitallaunch/launchpad-backend/internal/projects/domain"
)

func newTestStatusCache(t *testing.T) (*StatusCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewStatusCache(client), mr
}

func TestStatusCache(t *testing.T) {
	ctx := context.Background()

	t.Run("set then get round-trips the snapshot", func(t *testing.T) {
		cache, _ := newTestStatusCache(t)
		snap := domain.StatusSnapshot{
			ProjectID: uuid.New(),
			Slug:      "abc12345",
			Status:    domain.StatusAnalyzing,
		}
		require.NoError(t, cache.Set(ctx, snap))

		got, err := cache.Get(ctx, snap.ProjectID)
		require.NoError(t, err)
		assert.Equal(t, snap, got)
	})

	t.Run("missing snapshot is a cache miss", func(t *testing.T) {
		cache, _ := newTestStatusCache(t)
		_, err := cache.Get(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrStatusCacheMiss)
	})

	t.Run("snapshots expire", func(t *testing.T) {
		cache, mr := newTestStatusCache(t)
		snap := domain.StatusSnapshot{ProjectID: uuid.New(), Slug: "abc12345", Status: domain.StatusPending}
		require.NoError(t, cache.Set(ctx, snap))

		mr.FastForward(statusTTL + statusTTL)
		_, err := cache.Get(ctx, snap.ProjectID)
		assert.ErrorIs(t, err, ErrStatusCacheMiss)
	})

	t.Run("terminal snapshots outlive the in-flight TTL", func(t *testing.T) {
		cache, mr := newTestStatusCache(t)
		snap := domain.StatusSnapshot{ProjectID: uuid.New(), Slug: "abc12345", Status: domain.StatusCompleted}
		require.NoError(t, cache.Set(ctx, snap))

		mr.FastForward(statusTTL * 2)
		got, err := cache.Get(ctx, snap.ProjectID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, got.Status)
	})

	t.Run("set publishes a transition event", func(t *testing.T) {
		cache, _ := newTestStatusCache(t)
		snap := domain.StatusSnapshot{ProjectID: uuid.New(), Slug: "abc12345", Status: domain.StatusExtracting}

		sub := cache.client.Subscribe(ctx, cache.eventChannel(snap.ProjectID))
		t.Cleanup(func() { sub.Close() })
		_, err := sub.Receive(ctx)
		require.NoError(t, err)

		require.NoError(t, cache.Set(ctx, snap))

		msg, err := sub.ReceiveMessage(ctx)
		require.NoError(t, err)
		assert.Contains(t, msg.Payload, snap.ProjectID.String())
	})
}
