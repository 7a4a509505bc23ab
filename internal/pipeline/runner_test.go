package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/digitallaunch/launchpad-backend/config"
	"github.com/digitallaunch/launchpad-backend/internal/projects/domain"
)

// memStore is an in-memory ProjectStore that enforces the same guarded
// transitions the repository does.
type memStore struct {
	mu       sync.Mutex
	projects map[uuid.UUID]*domain.Project

	failSaveAnalysis bool
}

func newMemStore(projects ...*domain.Project) *memStore {
	s := &memStore{projects: make(map[uuid.UUID]*domain.Project)}
	for _, p := range projects {
		s.projects[p.ID] = p
	}
	return s
}

func (s *memStore) get(id uuid.UUID) (*domain.Project, error) {
	p, ok := s.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return p, nil
}

func (s *memStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.get(id)
	if err != nil {
		return nil, err
	}
	clone := *p
	return &clone, nil
}

func (s *memStore) Claim(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.get(id)
	if err != nil {
		return err
	}
	if p.ProcessingStatus != domain.StatusPending {
		return domain.ErrAlreadyClaimed
	}
	p.ProcessingStatus = domain.StatusExtracting
	return nil
}

func (s *memStore) Advance(_ context.Context, id uuid.UUID, from, to domain.ProcessingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.get(id)
	if err != nil {
		return err
	}
	if p.ProcessingStatus != from || !from.CanTransitionTo(to) {
		return domain.ErrInvalidTransition
	}
	p.ProcessingStatus = to
	return nil
}

func (s *memStore) SaveAnalysis(_ context.Context, id uuid.UUID, result *domain.AnalysisResult) error {
	if s.failSaveAnalysis {
		return errors.New("analysis write refused")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.get(id)
	if err != nil {
		return err
	}
	if p.ProcessingStatus != domain.StatusAnalyzing {
		return domain.ErrInvalidTransition
	}
	p.AnalysisResult = result
	p.ProcessingStatus = domain.StatusGeneratingCopy
	return nil
}

func (s *memStore) CompleteCopy(_ context.Context, id uuid.UUID, c domain.GeneratedCopy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.get(id)
	if err != nil {
		return err
	}
	if p.ProcessingStatus != domain.StatusGeneratingCopy {
		return domain.ErrInvalidTransition
	}
	p.Headline = &c.Headline
	p.Description = &c.Description
	p.Benefits = c.Benefits
	p.Features = c.Features
	p.MetaTitle = &c.MetaTitle
	p.MetaDescription = &c.MetaDescription
	p.Keywords = c.Keywords
	p.LandingTemplate = &c.LandingTemplate
	p.IsPublished = true
	p.ProcessingStatus = domain.StatusCompleted
	return nil
}

func (s *memStore) MarkFailed(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.get(id)
	if err != nil {
		return err
	}
	if p.ProcessingStatus.Terminal() {
		return domain.ErrInvalidTransition
	}
	p.ProcessingStatus = domain.StatusFailed
	return nil
}

type memPublisher struct {
	mu    sync.Mutex
	snaps []domain.StatusSnapshot
}

func (p *memPublisher) Set(_ context.Context, snap domain.StatusSnapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snaps = append(p.snaps, snap)
	return nil
}

func (p *memPublisher) statuses() []domain.ProcessingStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.ProcessingStatus, 0, len(p.snaps))
	for _, s := range p.snaps {
		out = append(out, s.Status)
	}
	return out
}

type stubArtifacts struct{ present bool }

func (a stubArtifacts) Exists(string) bool { return a.present }

// fastConfig has no simulated stage delays so runs complete immediately.
func fastConfig() config.PipelineConfig {
	return config.PipelineConfig{}
}

func pendingProject() *domain.Project {
	return &domain.Project{
		ID:               uuid.New(),
		Slug:             "abc12345",
		ProjectType:      domain.TypeEbook,
		TargetAudience:   "Desenvolvedores React",
		ProcessingStatus: domain.StatusPending,
	}
}

func TestRunner_Run(t *testing.T) {
	t.Run("full run completes and publishes the project", func(t *testing.T) {
		p := pendingProject()
		store := newMemStore(p)
		pub := &memPublisher{}
		runner := NewRunner(store, pub, stubArtifacts{present: true}, zap.NewNop(), fastConfig())

		err := runner.Run(context.Background(), p.ID)
		require.NoError(t, err)

		got, err := store.GetByID(context.Background(), p.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, got.ProcessingStatus)
		assert.True(t, got.IsPublished)
		require.NotNil(t, got.Headline)
		assert.Equal(t, "Domine Desenvolvedores em Tempo Record", *got.Headline)
		require.NotNil(t, got.MetaTitle)
		assert.Equal(t, *got.Headline+" | DigitalLaunch", *got.MetaTitle)
		require.NotNil(t, got.AnalysisResult)
		require.NotNil(t, got.LandingTemplate)
		assert.Equal(t, "HERO_FOCUS", *got.LandingTemplate)
		assert.NotEmpty(t, got.Benefits)
		assert.NotEmpty(t, got.Features)
		assert.NotEmpty(t, got.Keywords)

		assert.Equal(t, []domain.ProcessingStatus{
			domain.StatusExtracting,
			domain.StatusAnalyzing,
			domain.StatusGeneratingCopy,
			domain.StatusCompleted,
		}, pub.statuses())
	})

	t.Run("missing artifact fails the run with no partial writes", func(t *testing.T) {
		p := pendingProject()
		store := newMemStore(p)
		pub := &memPublisher{}
		runner := NewRunner(store, pub, stubArtifacts{present: false}, zap.NewNop(), fastConfig())

		err := runner.Run(context.Background(), p.ID)
		require.Error(t, err)

		got, err := store.GetByID(context.Background(), p.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusFailed, got.ProcessingStatus)
		assert.False(t, got.IsPublished)
		assert.Nil(t, got.Headline)
		assert.Nil(t, got.AnalysisResult)

		statuses := pub.statuses()
		assert.Equal(t, domain.StatusFailed, statuses[len(statuses)-1])
	})

	t.Run("analysis stage error escapes to FAILED", func(t *testing.T) {
		p := pendingProject()
		store := newMemStore(p)
		store.failSaveAnalysis = true
		runner := NewRunner(store, &memPublisher{}, stubArtifacts{present: true}, zap.NewNop(), fastConfig())

		err := runner.Run(context.Background(), p.ID)
		require.Error(t, err)

		got, err := store.GetByID(context.Background(), p.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusFailed, got.ProcessingStatus)
		assert.Nil(t, got.AnalysisResult)
		assert.Nil(t, got.Headline)
	})

	t.Run("duplicate trigger is ignored", func(t *testing.T) {
		p := pendingProject()
		p.ProcessingStatus = domain.StatusExtracting
		store := newMemStore(p)
		pub := &memPublisher{}
		runner := NewRunner(store, pub, stubArtifacts{present: true}, zap.NewNop(), fastConfig())

		err := runner.Run(context.Background(), p.ID)
		require.NoError(t, err)
		assert.Empty(t, pub.statuses())

		got, err := store.GetByID(context.Background(), p.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusExtracting, got.ProcessingStatus)
	})

	t.Run("unknown project is a no-op", func(t *testing.T) {
		store := newMemStore()
		runner := NewRunner(store, &memPublisher{}, stubArtifacts{present: true}, zap.NewNop(), fastConfig())

		err := runner.Run(context.Background(), uuid.New())
		require.NoError(t, err)
	})

	t.Run("cancelled context fails the run", func(t *testing.T) {
		p := pendingProject()
		store := newMemStore(p)
		cfg := fastConfig()
		cfg.ExtractDelay = time.Hour
		runner := NewRunner(store, &memPublisher{}, stubArtifacts{present: true}, zap.NewNop(), cfg)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := runner.Run(ctx, p.ID)
		require.Error(t, err)

		got, err := store.GetByID(context.Background(), p.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusFailed, got.ProcessingStatus)
	})
}
