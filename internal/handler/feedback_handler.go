package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/workshop-hub-api/internal/dto"
	"github.com/noah-isme/workshop-hub-api/internal/middleware"
	"github.com/noah-isme/workshop-hub-api/internal/models"
	"github.com/noah-isme/workshop-hub-api/internal/service"
	"github.com/noah-isme/workshop-hub-api/pkg/response"
)

type feedbackService interface {
	Submit(ctx context.Context, req dto.FeedbackRequest, claims *models.PassClaims) (*models.Feedback, error)
	Stats(ctx context.Context) (*service.FeedbackStats, error)
}

// FeedbackHandler records post-session surveys.
type FeedbackHandler struct {
	feedback feedbackService
}

// NewFeedbackHandler constructs the handler.
func NewFeedbackHandler(feedback feedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

// Submit godoc
// @Summary Submit workshop feedback
// @Tags Feedback
// @Accept json
// @Produce json
// @Param payload body dto.FeedbackRequest true "Survey"
// @Success 201 {object} response.Envelope
// @Router /feedback [post]
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req dto.FeedbackRequest
	if !bindJSON(c, &req) {
		return
	}
	fb, err := h.feedback.Submit(c.Request.Context(), req, middleware.PassFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	confirm(c, http.StatusCreated, fb, service.MessageFeedbackRecorded)
}

// Stats godoc
// @Summary Feedback averages
// @Tags Feedback
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /feedback/stats [get]
func (h *FeedbackHandler) Stats(c *gin.Context) {
	stats, err := h.feedback.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	ok(c, stats, nil)
}
