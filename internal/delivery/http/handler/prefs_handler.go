package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumatch/lumatch-backend/internal/delivery/http/middleware"
	"github.com/lumatch/lumatch-backend/internal/domain"
	"github.com/lumatch/lumatch-backend/internal/usecase/prefs"
)

type PrefsHandler struct {
	prefsUseCase *prefs.PrefsUseCase
}

func NewPrefsHandler(prefsUseCase *prefs.PrefsUseCase) *PrefsHandler {
	return &PrefsHandler{prefsUseCase: prefsUseCase}
}

// Get handles GET /preferences
func (h *PrefsHandler) Get(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	settings, err := h.prefsUseCase.Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to get preferences"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// Update handles PUT /preferences
func (h *PrefsHandler) Update(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req prefs.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	pref, err := h.prefsUseCase.Update(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to save preferences"})
		return
	}
	c.JSON(http.StatusOK, pref)
}

// Reset handles DELETE /preferences
func (h *PrefsHandler) Reset(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	if err := h.prefsUseCase.Reset(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to reset preferences"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}
