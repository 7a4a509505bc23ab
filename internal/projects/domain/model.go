package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProjectType classifies the uploaded digital product. Copy generation
// keys off this value, falling back to TypeOther for anything unknown.
type ProjectType string

const (
	TypeEbook    ProjectType = "EBOOK"
	TypeCourse   ProjectType = "COURSE"
	TypeTemplate ProjectType = "TEMPLATE"
	TypeApp      ProjectType = "APP"
	TypeToolkit  ProjectType = "TOOLKIT"
	TypeOther    ProjectType = "OTHER"
)

// Normalize maps unrecognized project types to TypeOther.
func (t ProjectType) Normalize() ProjectType {
	switch t {
	case TypeEbook, TypeCourse, TypeTemplate, TypeApp, TypeToolkit, TypeOther:
		return t
	default:
		return TypeOther
	}
}

// Project is the persisted record for one submission: the user-supplied
// metadata, the stored artifact reference, the pipeline status and every
// field the pipeline derives. Derived fields are nil until the stage that
// produces them commits.
type Project struct {
	ID               uuid.UUID        `json:"id"`
	Slug             string           `json:"slug"`
	OriginalFileName string           `json:"original_file_name"`
	ArtifactPath     string           `json:"artifact_path"`
	ProjectType      ProjectType      `json:"project_type"`
	TargetAudience   string           `json:"target_audience"`
	SkillLevel       string           `json:"skill_level"`
	Tone             string           `json:"tone"`
	Goal             string           `json:"goal"`
	Price            *float64         `json:"price,omitempty"`
	ProcessingStatus ProcessingStatus `json:"processing_status"`

	AnalysisResult *AnalysisResult `json:"analysis_result,omitempty"`

	Headline        *string  `json:"headline,omitempty"`
	Description     *string  `json:"description,omitempty"`
	Benefits        []string `json:"benefits,omitempty"`
	Features        []string `json:"features,omitempty"`
	MetaTitle       *string  `json:"meta_title,omitempty"`
	MetaDescription *string  `json:"meta_description,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`
	LandingTemplate *string  `json:"landing_template,omitempty"`

	IsPublished bool      `json:"is_published"`
	Views       int       `json:"views"`
	Conversions int       `json:"conversions"`
	CreatedAt   time.Time `json:"created_at"`
}

// Metadata is the user-supplied part of a creation request.
type Metadata struct {
	ProjectType    ProjectType `json:"projectType"`
	TargetAudience string      `json:"targetAudience"`
	SkillLevel     string      `json:"skillLevel"`
	Tone           string      `json:"tone"`
	Goal           string      `json:"goal"`
	Price          *float64    `json:"price,omitempty"`
}

// Summary is the dashboard projection returned by the list operation.
type Summary struct {
	ID          uuid.UUID   `json:"id"`
	Slug        string      `json:"slug"`
	Headline    *string     `json:"headline,omitempty"`
	ProjectType ProjectType `json:"project_type"`
	Price       *float64    `json:"price,omitempty"`
	Views       int         `json:"views"`
	Conversions int         `json:"conversions"`
	IsPublished bool        `json:"is_published"`
	CreatedAt   time.Time   `json:"created_at"`
}

// StatusSnapshot is what the status query returns to polling clients.
type StatusSnapshot struct {
	ProjectID uuid.UUID        `json:"project_id"`
	Slug      string           `json:"slug"`
	Status    ProcessingStatus `json:"processing_status"`
}

// AnalysisResult is the structured payload the analysis stage persists.
type AnalysisResult struct {
	Classification  Classification  `json:"projectClassification"`
	ContentAnalysis ContentAnalysis `json:"contentAnalysis"`
	AudienceProfile AudienceProfile `json:"audienceProfile"`

	RecommendedTemplate string `json:"recommendedTemplate"`
}

type Classification struct {
	ConfirmedType ProjectType `json:"confirmedType"`
	Category      string      `json:"category"`
	Subcategory   string      `json:"subcategory"`
	Confidence    int         `json:"confidence"`
}

type ContentAnalysis struct {
	MainTopics          []string `json:"mainTopics"`
	Complexity          string   `json:"complexity"`
	EstimatedValue      float64  `json:"estimatedValue"`
	UniqueSellingPoints []string `json:"uniqueSellingPoints"`
}

type AudienceProfile struct {
	PrimaryAudience string   `json:"primaryAudience"`
	PainPoints      []string `json:"painPoints"`
	DesiredOutcomes []string `json:"desiredOutcomes"`
}

// GeneratedCopy is the bundle the copy stage writes in one atomic update
// together with the COMPLETED status and the published flag. Either all
// of these fields are persisted or none are.
type GeneratedCopy struct {
	Headline        string   `json:"headline"`
	Description     string   `json:"description"`
	Benefits        []string `json:"benefits"`
	Features        []string `json:"features"`
	MetaTitle       string   `json:"meta_title"`
	MetaDescription string   `json:"meta_description"`
	Keywords        []string `json:"keywords"`
	LandingTemplate string   `json:"landing_template"`
}
