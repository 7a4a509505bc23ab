package http

import (
	"time"

	"github.com/digitallaunch/launchpad-backend/internal/projects/domain"
)

type createResponse struct {
	ProjectID string `json:"projectId"`
	Slug      string `json:"slug"`
}

type statusResponse struct {
	ProcessingStatus domain.ProcessingStatus `json:"processingStatus"`
	Slug             string                  `json:"slug"`
}

type summaryResponse struct {
	ID          string             `json:"id"`
	Slug        string             `json:"slug"`
	Headline    *string            `json:"headline"`
	ProjectType domain.ProjectType `json:"projectType"`
	Price       *float64           `json:"price"`
	Views       int                `json:"views"`
	Conversions int                `json:"conversions"`
	IsPublished bool               `json:"isPublished"`
	CreatedAt   time.Time          `json:"createdAt"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toSummaryResponse(s domain.Summary) summaryResponse {
	return summaryResponse{
		ID:          s.ID.String(),
		Slug:        s.Slug,
		Headline:    s.Headline,
		ProjectType: s.ProjectType,
		Price:       s.Price,
		Views:       s.Views,
		Conversions: s.Conversions,
		IsPublished: s.IsPublished,
		CreatedAt:   s.CreatedAt,
	}
}
