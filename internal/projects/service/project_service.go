package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/digitallaunch/launchpad-backend/internal/projects/domain"
	"github.com/digitallaunch/launchpad-backend/internal/projects/repository"
	"github.com/digitallaunch/launchpad-backend/internal/slug"
)

// slugAttempts bounds the retry-on-conflict loop for slug generation.
// At 8 base-36 characters a conflict is vanishingly rare; the loop
// exists so it is impossible rather than improbable.
const slugAttempts = 5

// Store is the repository surface the service uses.
type Store interface {
	Create(ctx context.Context, p *domain.Project) error
	StatusByID(ctx context.Context, id uuid.UUID) (domain.StatusSnapshot, error)
	ListSummaries(ctx context.Context) ([]domain.Summary, error)
	MarkFailed(ctx context.Context, id uuid.UUID) error
}

// ArtifactStore persists the uploaded archive before the record exists.
type ArtifactStore interface {
	Save(slugID, originalName string, r io.Reader) (string, error)
	Rename(oldSlug, newSlug string) (string, error)
	Remove(slugID string) error
}

// Enqueuer submits a created project to the pipeline.
type Enqueuer interface {
	Enqueue(ctx context.Context, id uuid.UUID) error
}

// StatusCache serves the poll path; a miss falls through to the Store.
type StatusCache interface {
	Get(ctx context.Context, id uuid.UUID) (domain.StatusSnapshot, error)
	Set(ctx context.Context, snap domain.StatusSnapshot) error
}

// ProjectService owns the creation flow (artifact first, record second,
// queue submission last) and the read paths the dashboard and the status
// poller hit.
type ProjectService struct {
	store     Store
	cache     StatusCache
	artifacts ArtifactStore
	queue     Enqueuer
	logger    *zap.Logger
}

func NewProjectService(store Store, cache StatusCache, artifacts ArtifactStore, queue Enqueuer, logger *zap.Logger) *ProjectService {
	return &ProjectService{
		store:     store,
		cache:     cache,
		artifacts: artifacts,
		queue:     queue,
		logger:    logger,
	}
}

// Create stores the artifact, persists the record in PENDING state and
// submits the pipeline job. Storage or validation failures leave no
// record behind; a failed queue submission marks the record FAILED so
// the poller can see it.
func (s *ProjectService) Create(ctx context.Context, meta domain.Metadata, originalFileName string, archive io.Reader) (*domain.Project, error) {
	if strings.TrimSpace(meta.TargetAudience) == "" {
		return nil, fmt.Errorf("%w: targetAudience is required", domain.ErrInvalidMetadata)
	}

	slugID, err := slug.New()
	if err != nil {
		return nil, fmt.Errorf("generate slug: %w", err)
	}

	artifactPath, err := s.artifacts.Save(slugID, originalFileName, archive)
	if err != nil {
		return nil, err
	}

	project := &domain.Project{
		Slug:             slugID,
		OriginalFileName: originalFileName,
		ArtifactPath:     artifactPath,
		ProjectType:      meta.ProjectType.Normalize(),
		TargetAudience:   meta.TargetAudience,
		SkillLevel:       meta.SkillLevel,
		Tone:             meta.Tone,
		Goal:             meta.Goal,
		Price:            meta.Price,
	}

	for attempt := 0; ; attempt++ {
		err = s.store.Create(ctx, project)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrSlugTaken) || attempt == slugAttempts-1 {
			if rmErr := s.artifacts.Remove(project.Slug); rmErr != nil {
				s.logger.Warn("orphan artifact left behind", zap.String("slug", project.Slug), zap.Error(rmErr))
			}
			return nil, fmt.Errorf("create project record: %w", err)
		}

		fresh, genErr := slug.New()
		if genErr != nil {
			return nil, fmt.Errorf("regenerate slug: %w", genErr)
		}
		newPath, mvErr := s.artifacts.Rename(project.Slug, fresh)
		if mvErr != nil {
			return nil, mvErr
		}
		s.logger.Warn("slug collision, retrying",
			zap.String("taken", project.Slug), zap.String("next", fresh))
		project.Slug = fresh
		project.ArtifactPath = newPath
	}

	if err := s.cache.Set(ctx, domain.StatusSnapshot{
		ProjectID: project.ID,
		Slug:      project.Slug,
		Status:    domain.StatusPending,
	}); err != nil {
		s.logger.Warn("status cache seed failed", zap.Error(err))
	}

	if err := s.queue.Enqueue(ctx, project.ID); err != nil {
		// The record exists but nothing will process it; surface that
		// through the status the client is already polling.
		s.logger.Error("pipeline enqueue failed", zap.String("project_id", project.ID.String()), zap.Error(err))
		if failErr := s.store.MarkFailed(ctx, project.ID); failErr != nil {
			s.logger.Error("could not mark project failed after enqueue error", zap.Error(failErr))
		}
	}

	return project, nil
}

// Status serves the poll path: cache first, database on miss, unknown
// ids surface as domain.ErrProjectNotFound.
func (s *ProjectService) Status(ctx context.Context, id uuid.UUID) (domain.StatusSnapshot, error) {
	if snap, err := s.cache.Get(ctx, id); err == nil {
		return snap, nil
	} else if !errors.Is(err, repository.ErrStatusCacheMiss) {
		s.logger.Warn("status cache read failed", zap.Error(err))
	}

	snap, err := s.store.StatusByID(ctx, id)
	if err != nil {
		return domain.StatusSnapshot{}, err
	}
	if err := s.cache.Set(ctx, snap); err != nil {
		s.logger.Warn("status cache refill failed", zap.Error(err))
	}
	return snap, nil
}

// List returns the dashboard summaries, newest first.
func (s *ProjectService) List(ctx context.Context) ([]domain.Summary, error) {
	return s.store.ListSummaries(ctx)
}
