package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Worker is the supervising consumer loop: pop a project id, run the
// pipeline for it, log the outcome. Runs until its context is cancelled.
type Worker struct {
	queue  *Queue
	runner *Runner
	logger *zap.Logger
}

func NewWorker(queue *Queue, runner *Runner, logger *zap.Logger) *Worker {
	return &Worker{
		queue:  queue,
		runner: runner,
		logger: logger,
	}
}

// Start runs the worker loop. Jobs run sequentially within one worker;
// records are independent, so concurrency comes from running more
// workers, not from interleaving stages.
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("pipeline worker started")

	for {
		id, err := w.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				w.logger.Info("pipeline worker shutting down")
				return
			}
			w.logger.Error("queue error", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		if err := w.runner.Run(ctx, id); err != nil {
			// Already persisted as FAILED; nothing to propagate.
			w.logger.Error("pipeline run failed",
				zap.String("project_id", id.String()), zap.Error(err))
		}
	}
}
