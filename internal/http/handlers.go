package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"launchpath/internal/service"
)

// Pinger es lo minimo que /health necesita de la base.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers agrupa las dependencias que monta el router.
type Handlers struct {
	Users    *UserHandler
	Paths    *PathHandler
	Journey  *JourneyHandler
	CheckIns *CheckInHandler
	Progress *ProgressHandler
	Finances *FinanceHandler
	Profiles *ProfileHandler
	DB       Pinger
}

// statusFor traduce errores de servicio a codigos HTTP.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidEvaluation),
		errors.Is(err, service.ErrInvalidOutcome),
		errors.Is(err, service.ErrChapterIncomplete),
		errors.Is(err, service.ErrInvalidEntry),
		errors.Is(err, service.ErrInvalidProfile),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrWeakPassword):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrJWTInvalid),
		errors.Is(err, service.ErrJWTExpired):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrUnknownPath),
		errors.Is(err, service.ErrEvaluationMissing),
		errors.Is(err, service.ErrUnknownMilestone):
		return http.StatusNotFound
	case errors.Is(err, service.ErrPathNotViable),
		errors.Is(err, service.ErrPathEliminated),
		errors.Is(err, service.ErrPathIsCurrent),
		errors.Is(err, service.ErrNoActiveCommitment),
		errors.Is(err, service.ErrNoDirection),
		errors.Is(err, service.ErrChapterNotCurrent),
		errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, service.ErrRateLimited):
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

// respondError escribe el error del servicio. Los 500 se registran y no exponen el detalle.
func respondError(c *gin.Context, logger *zap.Logger, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error(op+" failed", zap.Error(err))
		c.JSON(status, gin.H{"error": "could not " + op})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, logger *zap.Logger, what string, err error) {
	logger.Warn("invalid "+what+" request", zap.Error(err))
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
}

// currentUserID sale de los claims que dejo JWTAuthMiddleware.
func currentUserID(c *gin.Context) string {
	claims, _ := GetAuthClaims(c)
	return claims.UserID
}

// Health maneja GET /health.
func (h Handlers) Health(c *gin.Context) {
	if h.DB != nil {
		if err := h.DB.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": "database unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
