package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"launchpath/internal/domain"
	"launchpath/internal/service"
)

// PathHandler expone el catalogo de paths sin autenticacion.
type PathHandler struct {
	logger     *zap.Logger
	engine     *service.DecisionEngine
	milestones *service.MilestoneService
	threshold  float64
}

func NewPathHandler(logger *zap.Logger, engine *service.DecisionEngine, milestones *service.MilestoneService, threshold float64) *PathHandler {
	if threshold <= 0 || threshold >= 1 {
		threshold = service.DefaultViableThreshold
	}
	return &PathHandler{
		logger:     logger,
		engine:     engine,
		milestones: milestones,
		threshold:  threshold,
	}
}

// ListPaths maneja GET /paths.
func (h *PathHandler) ListPaths(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"paths": h.engine.Catalog().Paths()})
}

// GetPath maneja GET /paths/:id.
func (h *PathHandler) GetPath(c *gin.Context) {
	path, ok := h.engine.Catalog().Path(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": service.ErrUnknownPath.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": path})
}

// PathMilestones maneja GET /paths/:id/milestones.
func (h *PathHandler) PathMilestones(c *gin.Context) {
	id := c.Param("id")
	if !h.engine.Catalog().HasPath(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": service.ErrUnknownPath.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"milestones": h.milestones.MilestonesForPath(id)})
}

// Rank maneja POST /paths/rank: ranking para una evaluacion suelta, sin guardarla.
func (h *PathHandler) Rank(c *gin.Context) {
	var req struct {
		Patience           *float64 `json:"patience" binding:"required"`
		RejectionTolerance *float64 `json:"rejection_tolerance" binding:"required"`
		BuildVsSell        *float64 `json:"build_vs_sell" binding:"required"`
		Leverage           *float64 `json:"leverage" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, "rank", err)
		return
	}
	eval := domain.Evaluation{
		Patience:           *req.Patience,
		RejectionTolerance: *req.RejectionTolerance,
		BuildVsSell:        *req.BuildVsSell,
		Leverage:           *req.Leverage,
	}
	if err := eval.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ranked := h.engine.RankPathsByFit(eval)
	viable, poor := service.ViablePaths(ranked, h.threshold)
	c.JSON(http.StatusOK, service.EvaluationResult{Evaluation: eval, Viable: viable, PoorFit: poor})
}
