package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/digitallaunch/launchpad-backend/internal/projects/domain"
	"github.com/digitallaunch/launchpad-backend/internal/storage/artifacts"
)

// ProjectService is the application surface the handlers call into.
type ProjectService interface {
	Create(ctx context.Context, meta domain.Metadata, originalFileName string, archive io.Reader) (*domain.Project, error)
	Status(ctx context.Context, id uuid.UUID) (domain.StatusSnapshot, error)
	List(ctx context.Context) ([]domain.Summary, error)
}

type Handler struct {
	svc       ProjectService
	maxUpload int64
	logger    *zap.Logger
}

func NewHandler(svc ProjectService, maxUpload int64, logger *zap.Logger) *Handler {
	return &Handler{
		svc:       svc,
		maxUpload: maxUpload,
		logger:    logger,
	}
}

func (h *Handler) Register(r gin.IRouter) {
	r.POST("/projects", h.create)
	r.GET("/projects", h.list)
	r.GET("/projects/:project_id/status", h.status)
}

// create accepts a multipart payload: an archive in "file" and a JSON
// object in "metadata". Validation and storage failures leave no record.
func (h *Handler) create(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "no archive uploaded"})
		return
	}
	if h.maxUpload > 0 && file.Size > h.maxUpload {
		c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Error: "archive exceeds the upload limit"})
		return
	}

	var meta domain.Metadata
	if err := json.Unmarshal([]byte(c.PostForm("metadata")), &meta); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid metadata"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "could not read upload"})
		return
	}
	defer src.Close()

	project, err := h.svc.Create(c.Request.Context(), meta, file.Filename, src)
	if err != nil {
		switch {
		case errors.Is(err, artifacts.ErrNotArchive), errors.Is(err, domain.ErrInvalidMetadata):
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		default:
			h.logger.Error("project creation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to process upload"})
		}
		return
	}

	c.JSON(http.StatusOK, createResponse{
		ProjectID: project.ID.String(),
		Slug:      project.Slug,
	})
}

func (h *Handler) list(c *gin.Context) {
	summaries, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.logger.Error("project listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to list projects"})
		return
	}

	out := make([]summaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, toSummaryResponse(s))
	}
	c.JSON(http.StatusOK, out)
}

// status is the poll endpoint. Unknown ids are an explicit 404.
func (h *Handler) status(c *gin.Context) {
	id, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid project id"})
		return
	}

	snap, err := h.svc.Status(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, errorResponse{Error: "project not found"})
			return
		}
		h.logger.Error("status query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to query status"})
		return
	}

	c.JSON(http.StatusOK, statusResponse{
		ProcessingStatus: snap.Status,
		Slug:             snap.Slug,
	})
}
