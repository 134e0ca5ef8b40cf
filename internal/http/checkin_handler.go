package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"launchpath/internal/service"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// CheckInHandler cubre el ciclo compromiso, check-in y dashboard.
type CheckInHandler struct {
	logger    *zap.Logger
	checkIns  *service.CheckInService
	dashboard *service.DashboardService
}

func NewCheckInHandler(logger *zap.Logger, checkIns *service.CheckInService, dashboard *service.DashboardService) *CheckInHandler {
	return &CheckInHandler{
		logger:    logger,
		checkIns:  checkIns,
		dashboard: dashboard,
	}
}

// Options maneja GET /check-in/options.
func (h *CheckInHandler) Options(c *gin.Context) {
	opts, err := h.checkIns.Options(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, h.logger, "load check-in options", err)
		return
	}
	c.JSON(http.StatusOK, opts)
}

// Submit maneja POST /check-in.
func (h *CheckInHandler) Submit(c *gin.Context) {
	var req struct {
		Completed *bool  `json:"completed" binding:"required"`
		Outcome   string `json:"outcome"`
		Learned   string `json:"learned"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, "check-in", err)
		return
	}
	res, err := h.checkIns.Submit(c.Request.Context(), currentUserID(c), service.CheckInInput{
		Completed: *req.Completed,
		Outcome:   req.Outcome,
		Learned:   req.Learned,
	})
	if err != nil {
		respondError(c, h.logger, "record check-in", err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// History maneja GET /check-ins?limit=N.
func (h *CheckInHandler) History(c *gin.Context) {
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = min(n, maxHistoryLimit)
	}
	history, err := h.checkIns.History(c.Request.Context(), currentUserID(c), limit)
	if err != nil {
		respondError(c, h.logger, "list check-ins", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"check_ins": history})
}

// Dashboard maneja GET /dashboard.
func (h *CheckInHandler) Dashboard(c *gin.Context) {
	dash, err := h.dashboard.Get(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, h.logger, "load dashboard", err)
		return
	}
	c.JSON(http.StatusOK, dash)
}
