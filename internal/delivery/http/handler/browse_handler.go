package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumatch/lumatch-backend/internal/delivery/http/middleware"
	"github.com/lumatch/lumatch-backend/internal/domain"
	"github.com/lumatch/lumatch-backend/internal/usecase/browse"
)

type BrowseHandler struct {
	processor *browse.Processor
}

func NewBrowseHandler(processor *browse.Processor) *BrowseHandler {
	return &BrowseHandler{processor: processor}
}

// Start handles POST /browse/start.
func (h *BrowseHandler) Start(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	result, err := h.processor.Start(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileIncomplete) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "profile incomplete"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to start browsing"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Like handles POST /browse/like.
func (h *BrowseHandler) Like(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	result, err := h.processor.Like(c.Request.Context(), userID)
	if err != nil {
		h.writeActionError(c, err, "failed to like")
		return
	}
	c.JSON(http.StatusOK, result)
}

// Skip handles POST /browse/skip.
func (h *BrowseHandler) Skip(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	result, err := h.processor.Skip(c.Request.Context(), userID)
	if err != nil {
		h.writeActionError(c, err, "failed to skip")
		return
	}
	c.JSON(http.StatusOK, result)
}

// ReportRequest selects the report reason.
type ReportRequest struct {
	Reason string `json:"reason" binding:"required,reportreason"`
}

// Report handles POST /browse/report.
func (h *BrowseHandler) Report(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "reason is required"})
		return
	}

	result, err := h.processor.Report(c.Request.Context(), userID, domain.ReportReason(req.Reason))
	if err != nil {
		h.writeActionError(c, err, "failed to report")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *BrowseHandler) writeActionError(c *gin.Context, err error, fallback string) {
	var rateErr *domain.RateLimitedError
	switch {
	case errors.As(err, &rateErr):
		c.JSON(http.StatusTooManyRequests, RateLimitedResponse{
			Error:        "rate limited",
			RetryMinutes: rateErr.Minutes(),
		})
	case errors.Is(err, domain.ErrNoActiveSession):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "no active browse session"})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}
