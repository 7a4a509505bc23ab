// Package poller implements the client-side polling discipline for
// pipeline progress: query on a fixed interval, map status to a
// percentage, stop at a terminal status.
package poller

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/digitallaunch/launchpad-backend/internal/projects/domain"
)

// Source answers status queries. Both the service layer and an HTTP
// client wrapper satisfy this.
type Source interface {
	Status(ctx context.Context, id uuid.UUID) (domain.StatusSnapshot, error)
}

// Update is delivered to the consumer on every poll. Progress comes from
// the fixed status map and is presentational only.
type Update struct {
	Snapshot domain.StatusSnapshot
	Progress int
}

type Poller struct {
	src      Source
	interval time.Duration
	grace    time.Duration
	logger   *zap.Logger
}

// New builds a poller. interval is how often to re-query (2s reference
// behavior); grace is how long to linger after COMPLETED before
// returning, so final writes settle before the consumer navigates.
func New(src Source, interval, grace time.Duration, logger *zap.Logger) *Poller {
	return &Poller{
		src:      src,
		interval: interval,
		grace:    grace,
		logger:   logger,
	}
}

// Wait polls until the project reaches COMPLETED or FAILED, invoking
// onUpdate (if non-nil) after every successful query. Transient source
// errors are logged and polling continues; an unknown id stops the loop.
func (p *Poller) Wait(ctx context.Context, id uuid.UUID, onUpdate func(Update)) (domain.StatusSnapshot, error) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		snap, err := p.src.Status(ctx, id)
		switch {
		case errors.Is(err, domain.ErrProjectNotFound):
			return domain.StatusSnapshot{}, err
		case err != nil:
			p.logger.Warn("status poll failed", zap.String("project_id", id.String()), zap.Error(err))
		default:
			if onUpdate != nil {
				onUpdate(Update{Snapshot: snap, Progress: snap.Status.Progress()})
			}
			if snap.Status.Terminal() {
				if snap.Status == domain.StatusCompleted {
					if err := sleep(ctx, p.grace); err != nil {
						return snap, err
					}
				}
				return snap, nil
			}
		}

		select {
		case <-ctx.Done():
			return domain.StatusSnapshot{}, ctx.Err()
		case <-ticker.C:
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
