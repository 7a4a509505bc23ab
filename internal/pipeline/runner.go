package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/digitallaunch/launchpad-backend/config"
	"github.com/digitallaunch/launchpad-backend/internal/projects/domain"
)

// ProjectStore is the persistence surface the pipeline needs. Each stage
// write is a single guarded update; the repository enforces the forward
// transition order.
type ProjectStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	Claim(ctx context.Context, id uuid.UUID) error
	Advance(ctx context.Context, id uuid.UUID, from, to domain.ProcessingStatus) error
	SaveAnalysis(ctx context.Context, id uuid.UUID, result *domain.AnalysisResult) error
	CompleteCopy(ctx context.Context, id uuid.UUID, c domain.GeneratedCopy) error
	MarkFailed(ctx context.Context, id uuid.UUID) error
}

// StatusPublisher mirrors committed transitions to the poll-path cache.
// Publishing is advisory: failures are logged, never fatal to the run.
type StatusPublisher interface {
	Set(ctx context.Context, snap domain.StatusSnapshot) error
}

// ArtifactChecker is the slice of the artifact store the extraction
// stage uses as its integrity check.
type ArtifactChecker interface {
	Exists(slugID string) bool
}

// Runner drives one project through the stage chain
// PENDING → EXTRACTING → ANALYZING → GENERATING_COPY → COMPLETED.
// Any stage error escapes to FAILED with no partial field writes.
type Runner struct {
	store     ProjectStore
	status    StatusPublisher
	artifacts ArtifactChecker
	analyzer  *Analyzer
	writer    *Copywriter
	logger    *zap.Logger
	cfg       config.PipelineConfig
}

func NewRunner(store ProjectStore, status StatusPublisher, artifacts ArtifactChecker, logger *zap.Logger, cfg config.PipelineConfig) *Runner {
	return &Runner{
		store:     store,
		status:    status,
		artifacts: artifacts,
		analyzer:  NewAnalyzer(),
		writer:    NewCopywriter(),
		logger:    logger,
		cfg:       cfg,
	}
}

// Run executes the full pipeline for one project. Exactly one caller per
// project gets past the claim; duplicates log and return nil. The
// returned error is for the worker's log only — by the time Run returns,
// any failure is already persisted as FAILED.
func (r *Runner) Run(ctx context.Context, id uuid.UUID) error {
	logger := r.logger.With(zap.String("project_id", id.String()))

	if err := r.store.Claim(ctx, id); err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyClaimed):
			logger.Warn("duplicate pipeline trigger ignored")
			return nil
		case errors.Is(err, domain.ErrProjectNotFound):
			logger.Warn("project vanished before pipeline start")
			return nil
		default:
			return fmt.Errorf("claim project: %w", err)
		}
	}

	project, err := r.store.GetByID(ctx, id)
	if err != nil {
		return r.fail(ctx, id, "", logger, fmt.Errorf("load project after claim: %w", err))
	}
	slugID := project.Slug
	r.publish(ctx, logger, domain.StatusSnapshot{ProjectID: id, Slug: slugID, Status: domain.StatusExtracting})
	logger = logger.With(zap.String("slug", slugID))
	logger.Info("pipeline started", zap.String("project_type", string(project.ProjectType)))

	if err := r.extract(ctx, project); err != nil {
		return r.fail(ctx, id, slugID, logger, err)
	}
	r.publish(ctx, logger, domain.StatusSnapshot{ProjectID: id, Slug: slugID, Status: domain.StatusAnalyzing})

	// Re-read at stage entry: stage input is the committed record, never
	// a value cached across stages.
	project, err = r.store.GetByID(ctx, id)
	if err != nil {
		return r.fail(ctx, id, slugID, logger, fmt.Errorf("reload before analysis: %w", err))
	}
	if err := r.analyze(ctx, project); err != nil {
		return r.fail(ctx, id, slugID, logger, err)
	}
	r.publish(ctx, logger, domain.StatusSnapshot{ProjectID: id, Slug: slugID, Status: domain.StatusGeneratingCopy})

	project, err = r.store.GetByID(ctx, id)
	if err != nil {
		return r.fail(ctx, id, slugID, logger, fmt.Errorf("reload before copy generation: %w", err))
	}
	if err := r.generateCopy(ctx, project); err != nil {
		return r.fail(ctx, id, slugID, logger, err)
	}
	r.publish(ctx, logger, domain.StatusSnapshot{ProjectID: id, Slug: slugID, Status: domain.StatusCompleted})

	logger.Info("pipeline completed")
	return nil
}

// extract simulates archive extraction: verify the artifact is where the
// record says it is, spend the configured time, then commit
// EXTRACTING → ANALYZING. Real extraction replaces the body and keeps
// the transition.
func (r *Runner) extract(ctx context.Context, p *domain.Project) error {
	return r.stage(ctx, func(ctx context.Context) error {
		if !r.artifacts.Exists(p.Slug) {
			return fmt.Errorf("artifact missing for slug %s", p.Slug)
		}
		if err := wait(ctx, r.cfg.ExtractDelay); err != nil {
			return err
		}
		return r.store.Advance(ctx, p.ID, domain.StatusExtracting, domain.StatusAnalyzing)
	})
}

// analyze simulates the inference round trip and commits the analysis
// payload together with ANALYZING → GENERATING_COPY.
func (r *Runner) analyze(ctx context.Context, p *domain.Project) error {
	return r.stage(ctx, func(ctx context.Context) error {
		if err := wait(ctx, r.cfg.AnalyzeDelay); err != nil {
			return err
		}
		return r.store.SaveAnalysis(ctx, p.ID, r.analyzer.Analyze(p))
	})
}

// generateCopy derives the landing copy and commits every generated
// field, the published flag and GENERATING_COPY → COMPLETED atomically.
func (r *Runner) generateCopy(ctx context.Context, p *domain.Project) error {
	return r.stage(ctx, func(ctx context.Context) error {
		if err := wait(ctx, r.cfg.CopyDelay); err != nil {
			return err
		}
		if p.AnalysisResult == nil {
			return errors.New("analysis result missing before copy generation")
		}
		return r.store.CompleteCopy(ctx, p.ID, r.writer.Generate(p, p.AnalysisResult))
	})
}

// stage runs one unit of work under the per-stage timeout.
func (r *Runner) stage(ctx context.Context, work func(context.Context) error) error {
	if r.cfg.StageTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.StageTimeout)
		defer cancel()
	}
	return work(ctx)
}

// fail records the terminal FAILED state. The original request has long
// since returned; the status flag is the only trace a client sees.
func (r *Runner) fail(ctx context.Context, id uuid.UUID, slugID string, logger *zap.Logger, cause error) error {
	logger.Error("pipeline stage failed", zap.Error(cause))

	// Marking failed must not depend on the (possibly expired) stage
	// context.
	failCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := r.store.MarkFailed(failCtx, id); err != nil {
		logger.Error("could not mark project failed", zap.Error(err))
	}
	r.publish(failCtx, logger, domain.StatusSnapshot{ProjectID: id, Slug: slugID, Status: domain.StatusFailed})
	return cause
}

func (r *Runner) publish(ctx context.Context, logger *zap.Logger, snap domain.StatusSnapshot) {
	if r.status == nil {
		return
	}
	if err := r.status.Set(ctx, snap); err != nil {
		logger.Warn("status cache update failed", zap.Error(err))
	}
}

// wait sleeps for the simulated stage duration but honors cancellation.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
