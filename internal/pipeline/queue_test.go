package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQueue(t *testing.T) *Queue {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewQueue(client)
}

func TestQueue(t *testing.T) {
	t.Run("dequeue returns ids in submission order", func(t *testing.T) {
		q := newTestQueue(t)
		ctx := context.Background()

		first, second := uuid.New(), uuid.New()
		require.NoError(t, q.Enqueue(ctx, first))
		require.NoError(t, q.Enqueue(ctx, second))

		n, err := q.Len(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		got, err := q.Dequeue(ctx)
		require.NoError(t, err)
		assert.Equal(t, first, got)

		got, err = q.Dequeue(ctx)
		require.NoError(t, err)
		assert.Equal(t, second, got)
	})

	t.Run("dequeue honors context cancellation while blocked", func(t *testing.T) {
		q := newTestQueue(t)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := q.Dequeue(ctx)
		require.Error(t, err)
	})
}
