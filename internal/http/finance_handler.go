package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"launchpath/internal/domain"
	"launchpath/internal/service"
)

const dateLayout = "2006-01-02"

type FinanceHandler struct {
	logger   *zap.Logger
	finances *service.FinanceService
}

func NewFinanceHandler(logger *zap.Logger, finances *service.FinanceService) *FinanceHandler {
	return &FinanceHandler{logger: logger, finances: finances}
}

// AddEntry maneja POST /finances.
func (h *FinanceHandler) AddEntry(c *gin.Context) {
	var req struct {
		EntryDate   string  `json:"entry_date" binding:"required"`
		Type        string  `json:"type" binding:"required"`
		Amount      float64 `json:"amount"`
		Description string  `json:"description"`
		Category    string  `json:"category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, "financial entry", err)
		return
	}
	day, err := time.Parse(dateLayout, req.EntryDate)
	if err != nil {
		badRequest(c, h.logger, "financial entry", err)
		return
	}

	entry, err := h.finances.AddEntry(c.Request.Context(), currentUserID(c), service.FinancialEntryInput{
		EntryDate:   day,
		Type:        domain.EntryType(req.Type),
		Amount:      req.Amount,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		respondError(c, h.logger, "add financial entry", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

// Report maneja GET /finances.
func (h *FinanceHandler) Report(c *gin.Context) {
	report, err := h.finances.Report(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, h.logger, "load finances", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// UpsertWeekly maneja PUT /weekly-check-ins.
func (h *FinanceHandler) UpsertWeekly(c *gin.Context) {
	var req struct {
		WeekOf         string   `json:"week_of" binding:"required"`
		Revenue        *float64 `json:"revenue"`
		Expenses       *float64 `json:"expenses"`
		ClientsOrUsers *int     `json:"clients_or_users"`
		Wins           string   `json:"wins"`
		Blockers       string   `json:"blockers"`
		NextWeekFocus  string   `json:"next_week_focus"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, "weekly check-in", err)
		return
	}
	weekOf, err := time.Parse(dateLayout, req.WeekOf)
	if err != nil {
		badRequest(c, h.logger, "weekly check-in", err)
		return
	}

	weekly, err := h.finances.UpsertWeekly(c.Request.Context(), currentUserID(c), service.WeeklyCheckInInput{
		WeekOf:           weekOf,
		RevenueThisWeek:  req.Revenue,
		ExpensesThisWeek: req.Expenses,
		ClientsOrUsers:   req.ClientsOrUsers,
		Wins:             req.Wins,
		Blockers:         req.Blockers,
		NextWeekFocus:    req.NextWeekFocus,
	})
	if err != nil {
		respondError(c, h.logger, "save weekly check-in", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"weekly_check_in": weekly})
}

// Weekly maneja GET /weekly-check-ins.
func (h *FinanceHandler) Weekly(c *gin.Context) {
	weekly, err := h.finances.Weekly(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, h.logger, "list weekly check-ins", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"weekly_check_ins": weekly})
}
