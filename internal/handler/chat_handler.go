package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/workshop-hub-api/internal/dto"
	"github.com/noah-isme/workshop-hub-api/pkg/response"
)

type chatService interface {
	Send(ctx context.Context, text string) (dto.ChatTranscriptResponse, error)
	Transcript() dto.ChatTranscriptResponse
}

// ChatHandler exposes the workshop assistant.
type ChatHandler struct {
	chat chatService
}

// NewChatHandler constructs the handler.
func NewChatHandler(chat chatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Transcript godoc
// @Summary Chat transcript
// @Tags Chat
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /chat [get]
func (h *ChatHandler) Transcript(c *gin.Context) {
	ok(c, h.chat.Transcript(), nil)
}

// Send godoc
// @Summary Send a chat message
// @Tags Chat
// @Accept json
// @Produce json
// @Param payload body dto.ChatMessageRequest true "Message"
// @Success 202 {object} response.Envelope
// @Failure 429 {object} response.Envelope
// @Router /chat/messages [post]
func (h *ChatHandler) Send(c *gin.Context) {
	var req dto.ChatMessageRequest
	if !bindJSON(c, &req) {
		return
	}
	transcript, err := h.chat.Send(c.Request.Context(), req.Text)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, transcript, nil)
}
