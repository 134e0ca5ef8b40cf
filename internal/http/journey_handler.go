package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"launchpath/internal/service"
)

// JourneyHandler cubre orientacion, evaluacion y compromiso con un path.
type JourneyHandler struct {
	logger      *zap.Logger
	journey     *service.JourneyService
	evaluations *service.EvaluationService
}

func NewJourneyHandler(logger *zap.Logger, journey *service.JourneyService, evaluations *service.EvaluationService) *JourneyHandler {
	return &JourneyHandler{
		logger:      logger,
		journey:     journey,
		evaluations: evaluations,
	}
}

// GetState maneja GET /state.
func (h *JourneyHandler) GetState(c *gin.Context) {
	state, err := h.journey.State(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, h.logger, "load state", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": state})
}

// CompleteOrientation maneja POST /orient/complete.
func (h *JourneyHandler) CompleteOrientation(c *gin.Context) {
	state, err := h.journey.CompleteOrientation(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, h.logger, "complete orientation", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": state})
}

// Questions maneja GET /evaluation/questions.
func (h *JourneyHandler) Questions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"questions": h.evaluations.Questions()})
}

// SubmitEvaluation maneja POST /evaluation.
func (h *JourneyHandler) SubmitEvaluation(c *gin.Context) {
	var req struct {
		Answers map[string]float64 `json:"answers" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, "evaluation", err)
		return
	}
	res, err := h.evaluations.Submit(c.Request.Context(), currentUserID(c), req.Answers)
	if err != nil {
		respondError(c, h.logger, "save evaluation", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Ranking maneja GET /evaluation/ranking.
func (h *JourneyHandler) Ranking(c *gin.Context) {
	res, err := h.evaluations.Ranking(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, h.logger, "rank paths", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Commit maneja POST /commit.
func (h *JourneyHandler) Commit(c *gin.Context) {
	var req struct {
		PathID string `json:"path_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, "commit", err)
		return
	}
	res, err := h.journey.Commit(c.Request.Context(), currentUserID(c), req.PathID)
	if err != nil {
		respondError(c, h.logger, "commit", err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// EliminateDirection maneja POST /directions/eliminate.
func (h *JourneyHandler) EliminateDirection(c *gin.Context) {
	var req struct {
		PathID string `json:"path_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, "eliminate direction", err)
		return
	}
	state, err := h.journey.EliminateDirection(c.Request.Context(), currentUserID(c), req.PathID)
	if err != nil {
		respondError(c, h.logger, "eliminate direction", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": state})
}
