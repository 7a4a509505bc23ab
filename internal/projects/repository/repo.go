package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/digitallaunch/launchpad-backend/internal/projects/domain"
)

// Repo provides persistence for project records. Pipeline stage writes
// are single guarded UPDATEs: the status advance and the fields derived
// by that stage commit together or not at all.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const projectColumns = `
id, slug, original_file_name, artifact_path,
project_type, target_audience, skill_level, tone, goal, price,
processing_status, analysis_result,
headline, description, benefits, features,
meta_title, meta_description, keywords, landing_template,
is_published, views, conversions, created_at`

// Create inserts a new record in PENDING state. Returns ErrSlugTaken on
// a slug uniqueness violation so the caller can regenerate and retry.
func (r *Repo) Create(ctx context.Context, p *domain.Project) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.ProcessingStatus = domain.StatusPending
	p.ProjectType = p.ProjectType.Normalize()

	const q = `
insert into projects (
  id, slug, original_file_name, artifact_path,
  project_type, target_audience, skill_level, tone, goal, price,
  processing_status
)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
returning created_at;
`
	err := r.db.QueryRow(ctx, q,
		p.ID, p.Slug, p.OriginalFileName, p.ArtifactPath,
		p.ProjectType, p.TargetAudience, p.SkillLevel, p.Tone, p.Goal, p.Price,
		p.ProcessingStatus,
	).Scan(&p.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrSlugTaken
		}
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// GetByID reads the full record, fresh from the database.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	const q = `select ` + projectColumns + ` from projects where id = $1;`
	return r.scanProject(r.db.QueryRow(ctx, q, id))
}

// GetPublishedBySlug resolves a public landing page. Records that exist
// but are not published behave like missing ones.
func (r *Repo) GetPublishedBySlug(ctx context.Context, slugID string) (*domain.Project, error) {
	const q = `select ` + projectColumns + ` from projects where slug = $1 and is_published;`
	return r.scanProject(r.db.QueryRow(ctx, q, slugID))
}

// StatusByID returns the snapshot served to polling clients.
func (r *Repo) StatusByID(ctx context.Context, id uuid.UUID) (domain.StatusSnapshot, error) {
	const q = `select id, slug, processing_status from projects where id = $1;`
	var s domain.StatusSnapshot
	err := r.db.QueryRow(ctx, q, id).Scan(&s.ProjectID, &s.Slug, &s.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.StatusSnapshot{}, domain.ErrProjectNotFound
	}
	if err != nil {
		return domain.StatusSnapshot{}, err
	}
	return s, nil
}

// ListSummaries returns the dashboard projection, newest first.
func (r *Repo) ListSummaries(ctx context.Context) ([]domain.Summary, error) {
	const q = `
select id, slug, headline, project_type, price, views, conversions, is_published, created_at
from projects
order by created_at desc;
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Summary, 0, 16)
	for rows.Next() {
		var s domain.Summary
		if err := rows.Scan(&s.ID, &s.Slug, &s.Headline, &s.ProjectType, &s.Price,
			&s.Views, &s.Conversions, &s.IsPublished, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Claim moves PENDING → EXTRACTING. Exactly one caller wins; everyone
// else gets ErrAlreadyClaimed (or ErrProjectNotFound). This is the
// at-most-one-execution guard for the pipeline.
func (r *Repo) Claim(ctx context.Context, id uuid.UUID) error {
	return r.transition(ctx, id, domain.StatusPending, domain.StatusExtracting)
}

// Advance moves the record one step forward with no derived fields, e.g.
// EXTRACTING → ANALYZING once extraction work is done.
func (r *Repo) Advance(ctx context.Context, id uuid.UUID, from, to domain.ProcessingStatus) error {
	if !from.CanTransitionTo(to) || to == domain.StatusFailed {
		return domain.ErrInvalidTransition
	}
	return r.transition(ctx, id, from, to)
}

// SaveAnalysis commits the analysis payload together with the
// ANALYZING → GENERATING_COPY advance.
func (r *Repo) SaveAnalysis(ctx context.Context, id uuid.UUID, result *domain.AnalysisResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal analysis result: %w", err)
	}

	const q = `
update projects
set processing_status = $3, analysis_result = $4
where id = $1 and processing_status = $2;
`
	ct, err := r.db.Exec(ctx, q, id, domain.StatusAnalyzing, domain.StatusGeneratingCopy, payload)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return r.transitionConflict(ctx, id)
	}
	return nil
}

// CompleteCopy commits every generated field, flips is_published and
// advances GENERATING_COPY → COMPLETED in one statement.
func (r *Repo) CompleteCopy(ctx context.Context, id uuid.UUID, c domain.GeneratedCopy) error {
	benefits, err := json.Marshal(c.Benefits)
	if err != nil {
		return err
	}
	features, err := json.Marshal(c.Features)
	if err != nil {
		return err
	}
	keywords, err := json.Marshal(c.Keywords)
	if err != nil {
		return err
	}

	const q = `
update projects
set processing_status = $3,
    headline = $4, description = $5,
    benefits = $6, features = $7,
    meta_title = $8, meta_description = $9,
    keywords = $10, landing_template = $11,
    is_published = true
where id = $1 and processing_status = $2;
`
	ct, err := r.db.Exec(ctx, q, id, domain.StatusGeneratingCopy, domain.StatusCompleted,
		c.Headline, c.Description, benefits, features,
		c.MetaTitle, c.MetaDescription, keywords, c.LandingTemplate)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return r.transitionConflict(ctx, id)
	}
	return nil
}

// MarkFailed escapes to FAILED from any non-terminal status. Calling it
// on a terminal record is a no-op.
func (r *Repo) MarkFailed(ctx context.Context, id uuid.UUID) error {
	const q = `
update projects
set processing_status = $2
where id = $1 and processing_status not in ($2, $3);
`
	_, err := r.db.Exec(ctx, q, id, domain.StatusFailed, domain.StatusCompleted)
	return err
}

// IncrementViews bumps the landing page view counter. Disjoint from the
// pipeline's columns, so no coordination with stage writes is needed.
func (r *Repo) IncrementViews(ctx context.Context, id uuid.UUID) error {
	const q = `update projects set views = views + 1 where id = $1;`
	_, err := r.db.Exec(ctx, q, id)
	return err
}

// IncrementConversions bumps the checkout counter.
func (r *Repo) IncrementConversions(ctx context.Context, id uuid.UUID) error {
	const q = `update projects set conversions = conversions + 1 where id = $1;`
	_, err := r.db.Exec(ctx, q, id)
	return err
}

func (r *Repo) transition(ctx context.Context, id uuid.UUID, from, to domain.ProcessingStatus) error {
	const q = `
update projects
set processing_status = $3
where id = $1 and processing_status = $2;
`
	ct, err := r.db.Exec(ctx, q, id, from, to)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return r.transitionConflict(ctx, id)
	}
	return nil
}

// transitionConflict distinguishes "no such project" from "someone else
// already moved the record" after a guarded UPDATE touched zero rows.
func (r *Repo) transitionConflict(ctx context.Context, id uuid.UUID) error {
	const q = `select 1 from projects where id = $1;`
	var one int
	err := r.db.QueryRow(ctx, q, id).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrProjectNotFound
	}
	if err != nil {
		return err
	}
	return domain.ErrAlreadyClaimed
}

func (r *Repo) scanProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	var analysis, benefits, features, keywords []byte

	err := row.Scan(
		&p.ID, &p.Slug, &p.OriginalFileName, &p.ArtifactPath,
		&p.ProjectType, &p.TargetAudience, &p.SkillLevel, &p.Tone, &p.Goal, &p.Price,
		&p.ProcessingStatus, &analysis,
		&p.Headline, &p.Description, &benefits, &features,
		&p.MetaTitle, &p.MetaDescription, &keywords, &p.LandingTemplate,
		&p.IsPublished, &p.Views, &p.Conversions, &p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}

	if len(analysis) > 0 {
		p.AnalysisResult = &domain.AnalysisResult{}
		if err := json.Unmarshal(analysis, p.AnalysisResult); err != nil {
			return nil, fmt.Errorf("decode analysis result: %w", err)
		}
	}
	for _, col := range []struct {
		raw []byte
		dst *[]string
	}{
		{benefits, &p.Benefits},
		{features, &p.Features},
		{keywords, &p.Keywords},
	} {
		if len(col.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(col.raw, col.dst); err != nil {
			return nil, fmt.Errorf("decode project field: %w", err)
		}
	}

	return &p, nil
}
