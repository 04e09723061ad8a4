package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lumatch/lumatch-backend/internal/delivery/http/middleware"
	"github.com/lumatch/lumatch-backend/internal/domain"
	"github.com/lumatch/lumatch-backend/internal/usecase/auth"
)

type AuthHandler struct {
	authUseCase *auth.TelegramAuthUseCase
}

func NewAuthHandler(authUseCase *auth.TelegramAuthUseCase) *AuthHandler {
	return &AuthHandler{authUseCase: authUseCase}
}

// TelegramAuth handles POST /auth/telegram. The body is the login-widget
// payload: id, first_name, username, auth_date, hash, ...
func (h *AuthHandler) TelegramAuth(c *gin.Context) {
	var payload map[string]string
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid payload"})
		return
	}

	resp, err := h.authUseCase.Authenticate(c.Request.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidSignature), errors.Is(err, auth.ErrPayloadExpired):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
		case errors.Is(err, domain.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "authentication failed"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token, _ := strings.CutPrefix(header, "Bearer ")
	if err := h.authUseCase.Logout(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged_out"})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	user, err := h.authUseCase.Me(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}
