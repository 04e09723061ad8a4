package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lumatch/lumatch-backend/internal/domain"
	"github.com/lumatch/lumatch-backend/internal/usecase/profile"
)

type AdminHandler struct {
	profileUseCase *profile.ProfileUseCase
}

func NewAdminHandler(profileUseCase *profile.ProfileUseCase) *AdminHandler {
	return &AdminHandler{profileUseCase: profileUseCase}
}

type moderationRequest struct {
	Enabled bool `json:"enabled"`
}

// Suspend handles POST /admin/profiles/:id/suspend
func (h *AdminHandler) Suspend(c *gin.Context) {
	h.setFlag(c, h.profileUseCase.SetSuspended)
}

// Shadowban handles POST /admin/profiles/:id/shadowban
func (h *AdminHandler) Shadowban(c *gin.Context) {
	h.setFlag(c, h.profileUseCase.SetShadowbanned)
}

func (h *AdminHandler) setFlag(c *gin.Context, apply func(ctx context.Context, profileID int64, on bool) error) {
	profileID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid profile id"})
		return
	}

	var req moderationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := apply(c.Request.Context(), profileID, req.Enabled); err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
