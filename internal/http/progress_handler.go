package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"launchpath/internal/service"
)

// ProgressHandler cubre capitulos e hitos del path elegido.
type ProgressHandler struct {
	logger     *zap.Logger
	chapters   *service.ChapterService
	milestones *service.MilestoneService
}

func NewProgressHandler(logger *zap.Logger, chapters *service.ChapterService, milestones *service.MilestoneService) *ProgressHandler {
	return &ProgressHandler{
		logger:     logger,
		chapters:   chapters,
		milestones: milestones,
	}
}

// CurrentChapter maneja GET /chapters/current. Sin capitulo pendiente responde chapter null.
func (h *ProgressHandler) CurrentChapter(c *gin.Context) {
	progress, err := h.chapters.Current(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, h.logger, "load chapter", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": progress, "path_completed": progress == nil})
}

// CompleteChapter maneja POST /chapters/:id/complete.
func (h *ProgressHandler) CompleteChapter(c *gin.Context) {
	var req struct {
		Outputs map[string]string `json:"outputs" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, "complete chapter", err)
		return
	}
	next, err := h.chapters.Complete(c.Request.Context(), currentUserID(c), c.Param("id"), req.Outputs)
	if err != nil {
		respondError(c, h.logger, "complete chapter", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": next, "path_completed": next == nil})
}

// ChapterOutputs maneja GET /chapters/outputs.
func (h *ProgressHandler) ChapterOutputs(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentUserID(c)
	outputs, err := h.chapters.Outputs(ctx, userID)
	if err != nil {
		respondError(c, h.logger, "list chapter outputs", err)
		return
	}
	completions, err := h.chapters.Completions(ctx, userID)
	if err != nil {
		respondError(c, h.logger, "list path completions", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"outputs": outputs, "completions": completions})
}

// Summary maneja GET /summary.
func (h *ProgressHandler) Summary(c *gin.Context) {
	summary, err := h.chapters.BusinessSummary(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, h.logger, "build business summary", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Milestones maneja GET /milestones.
func (h *ProgressHandler) Milestones(c *gin.Context) {
	list, err := h.milestones.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, h.logger, "list milestones", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"milestones": list})
}

// CompleteMilestone maneja POST /milestones/:key/complete.
func (h *ProgressHandler) CompleteMilestone(c *gin.Context) {
	if err := h.milestones.Complete(c.Request.Context(), currentUserID(c), c.Param("key")); err != nil {
		respondError(c, h.logger, "complete milestone", err)
		return
	}
	c.Status(http.StatusNoContent)
}
