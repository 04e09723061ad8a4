package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumatch/lumatch-backend/internal/delivery/http/middleware"
	"github.com/lumatch/lumatch-backend/internal/domain"
	"github.com/lumatch/lumatch-backend/internal/usecase/profile"
)

type ProfileHandler struct {
	profileUseCase *profile.ProfileUseCase
}

func NewProfileHandler(profileUseCase *profile.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{profileUseCase: profileUseCase}
}

// GetMyProfile handles GET /profile/me
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	card, err := h.profileUseCase.GetCard(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to get profile"})
		return
	}
	c.JSON(http.StatusOK, card)
}

// SaveMyProfile handles PUT /profile/me
func (h *ProfileHandler) SaveMyProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req profile.SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	saved, err := h.profileUseCase.SaveProfile(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTextRejected):
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		case errors.Is(err, domain.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to save profile"})
		}
		return
	}
	c.JSON(http.StatusOK, saved)
}

// SetTags handles PUT /profile/me/tags
func (h *ProfileHandler) SetTags(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req profile.SetTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	slugs, err := h.profileUseCase.SetTags(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to save tags"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": slugs})
}

// SetLocation handles PUT /profile/me/location
func (h *ProfileHandler) SetLocation(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req profile.SetLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.profileUseCase.SetLocation(c.Request.Context(), userID, &req); err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to save location"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

// ClearLocation handles DELETE /profile/me/location
func (h *ProfileHandler) ClearLocation(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	if err := h.profileUseCase.ClearLocation(c.Request.Context(), userID); err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to clear location"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}

// DeleteMe handles DELETE /profile/me, the full account wipe.
func (h *ProfileHandler) DeleteMe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	if err := h.profileUseCase.DeleteAccount(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to delete account"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
