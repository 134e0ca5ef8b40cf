package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"launchpath/internal/domain"
	"launchpath/internal/service"
)

type ProfileHandler struct {
	logger   *zap.Logger
	profiles *service.ProfileService
}

func NewProfileHandler(logger *zap.Logger, profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{logger: logger, profiles: profiles}
}

// GetProfile maneja GET /profile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profiles.Get(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, h.logger, "load business profile", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UpdateProfile maneja PUT /profile. user_id y updated_at del cuerpo se ignoran.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req domain.BusinessProfile
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, "business profile", err)
		return
	}
	profile, err := h.profiles.Update(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		respondError(c, h.logger, "save business profile", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
