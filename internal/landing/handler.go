package landing

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/digitallaunch/launchpad-backend/internal/projects/domain"
)

// Store is the repository surface the public pages need. The counter
// increments touch columns disjoint from the pipeline's, so they need no
// coordination with stage writes.
type Store interface {
	GetPublishedBySlug(ctx context.Context, slugID string) (*domain.Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
	IncrementConversions(ctx context.Context, id uuid.UUID) error
}

type Handler struct {
	store    Store
	renderer *Renderer
	logger   *zap.Logger
}

func NewHandler(store Store, renderer *Renderer, logger *zap.Logger) *Handler {
	return &Handler{
		store:    store,
		renderer: renderer,
		logger:   logger,
	}
}

func (h *Handler) Register(r gin.IRouter) {
	r.GET("/p/:slug", h.show)
	r.POST("/api/checkout/:project_id", h.checkout)
}

// show renders the public landing page. Unpublished and unknown slugs
// are indistinguishable: both 404.
func (h *Handler) show(c *gin.Context) {
	project, err := h.store.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			c.String(http.StatusNotFound, "página não encontrada")
			return
		}
		h.logger.Error("landing page lookup failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "erro interno")
		return
	}

	if err := h.store.IncrementViews(c.Request.Context(), project.ID); err != nil {
		h.logger.Warn("view counter increment failed", zap.Error(err))
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Render(c.Writer, project); err != nil {
		h.logger.Error("landing page render failed", zap.Error(err))
	}
}

// checkout accepts the project identifier and records the conversion.
// The payment flow itself lives elsewhere.
func (h *Handler) checkout(c *gin.Context) {
	id, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	project, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		h.logger.Error("checkout lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if !project.IsPublished {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	if err := h.store.IncrementConversions(c.Request.Context(), project.ID); err != nil {
		h.logger.Warn("conversion counter increment failed", zap.Error(err))
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "accepted", "projectId": project.ID.String()})
}
