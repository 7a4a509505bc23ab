package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const queueKey = "launchpad:pipeline:queue"

// Queue is the explicit hand-off between the create request and the
// pipeline worker: creation pushes the project id, a worker pops it.
// Nothing runs on an unobserved goroutine spawned by the request.
type Queue struct {
	client *redis.Client
}

func NewQueue(client *redis.Client) *Queue {
	return &Queue{client: client}
}

// Enqueue submits a project for processing.
func (q *Queue) Enqueue(ctx context.Context, id uuid.UUID) error {
	if err := q.client.LPush(ctx, queueKey, id.String()).Err(); err != nil {
		return fmt.Errorf("enqueue project %s: %w", id, err)
	}
	return nil
}

// Dequeue blocks until a project id is available or ctx is cancelled.
func (q *Queue) Dequeue(ctx context.Context) (uuid.UUID, error) {
	result, err := q.client.BRPop(ctx, 0, queueKey).Result()
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(result[1])
}

// Len reports how many submissions are waiting.
func (q *Queue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, queueKey).Result()
}
