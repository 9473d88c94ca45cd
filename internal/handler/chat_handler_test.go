package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/workshop-hub-api/internal/dto"
	"github.com/noah-isme/workshop-hub-api/internal/models"
	appErrors "github.com/noah-isme/workshop-hub-api/pkg/errors"
)

type fakeChat struct {
	sent []string
}

func (f *fakeChat) Send(_ context.Context, text string) (dto.ChatTranscriptResponse, error) {
	if text == "" {
		return dto.ChatTranscriptResponse{}, appErrors.Clone(appErrors.ErrValidation, "message text is required")
	}
	f.sent = append(f.sent, text)
	return dto.ChatTranscriptResponse{Messages: []models.ChatMessage{{Sender: models.ChatSenderUser, Text: text}}, Typing: true}, nil
}

func (f *fakeChat) Transcript() dto.ChatTranscriptResponse {
	return dto.ChatTranscriptResponse{Messages: []models.ChatMessage{{Sender: models.ChatSenderBot, Text: "hello"}}}
}

func TestChatHandlerSend(t *testing.T) {
	chat := &fakeChat{}
	h := NewChatHandler(chat)

	c, rec := newTestContext(http.MethodPost, "/chat/messages", map[string]string{"text": "hooks?"})
	h.Send(c)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, []string{"hooks?"}, chat.sent)
	assert.Contains(t, string(decode(t, rec).Data), `"typing":true`)

	c, rec = newTestContext(http.MethodPost, "/chat/messages", map[string]string{"text": ""})
	h.Send(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatHandlerTranscript(t *testing.T) {
	h := NewChatHandler(&fakeChat{})
	c, rec := newTestContext(http.MethodGet, "/chat", nil)
	h.Transcript(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(decode(t, rec).Data), `"sender":"bot"`)
}
