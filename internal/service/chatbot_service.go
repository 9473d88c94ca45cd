package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/workshop-hub-api/internal/dto"
	"github.com/noah-isme/workshop-hub-api/internal/models"
	appErrors "github.com/noah-isme/workshop-hub-api/pkg/errors"
	"github.com/noah-isme/workshop-hub-api/pkg/jobs"
)

// JobChatReply is the queue job type that delivers a delayed bot reply.
const JobChatReply = "chat.reply"

// Respond picks the assistant reply for text. The first keyword found as a substring of the
// lowercased input wins; otherwise the reply for the current view, otherwise a random generic one.
func Respond(script models.ChatScript, text string, view models.View, rng Random) string {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, kw := range script.Keywords {
		if kw.Keyword != "" && strings.Contains(lower, kw.Keyword) {
			return kw.Response
		}
	}
	if reply, ok := script.Context[view]; ok && reply != "" {
		return reply
	}
	if len(script.Generic) == 0 {
		return ""
	}
	return script.Generic[rng.Intn(len(script.Generic))]
}

type currentViewReader interface {
	Current() models.View
}

type delayedEnqueuer interface {
	EnqueueAfter(delay time.Duration, job jobs.Job) error
}

type chatReplyPayload struct {
	Text string
}

// ChatbotConfig bounds the cosmetic reply latency.
type ChatbotConfig struct {
	MinDelay time.Duration
	MaxDelay time.Duration
}

// ChatbotService keeps the assistant transcript and schedules replies on the shared queue.
type ChatbotService struct {
	mu       sync.Mutex
	script   models.ChatScript
	messages []models.ChatMessage
	pending  int

	views   currentViewReader
	queue   delayedEnqueuer
	config  ChatbotConfig
	metrics *MetricsService
	logger  *zap.Logger
	now     func() time.Time

	rngMu sync.Mutex
	rng   Random
}

// NewChatbotService starts a transcript holding the greeting.
func NewChatbotService(script models.ChatScript, views currentViewReader, config ChatbotConfig, rng Random, metrics *MetricsService, logger *zap.Logger) *ChatbotService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.MaxDelay < config.MinDelay {
		config.MaxDelay = config.MinDelay
	}
	s := &ChatbotService{
		script:  script,
		views:   views,
		config:  config,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
		rng:     rng,
	}
	if script.Greeting != "" {
		s.messages = append(s.messages, models.ChatMessage{Sender: models.ChatSenderBot, Text: script.Greeting, SentAt: s.now().UTC()})
	}
	return s
}

// Register binds the reply job and the queue used to delay it.
func (s *ChatbotService) Register(mux *jobs.Mux, queue delayedEnqueuer) {
	s.mu.Lock()
	s.queue = queue
	s.mu.Unlock()
	mux.Handle(JobChatReply, s.handleReply)
}

// Send appends the user line, raises the typing indicator and schedules the reply.
func (s *ChatbotService) Send(_ context.Context, text string) (dto.ChatTranscriptResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return dto.ChatTranscriptResponse{}, appErrors.Clone(appErrors.ErrValidation, "message text is required")
	}

	s.mu.Lock()
	queue := s.queue
	if queue == nil {
		s.mu.Unlock()
		return dto.ChatTranscriptResponse{}, appErrors.Clone(appErrors.ErrInternal, "chat replies are not available")
	}
	s.messages = append(s.messages, models.ChatMessage{Sender: models.ChatSenderUser, Text: text, SentAt: s.now().UTC()})
	s.pending++
	s.mu.Unlock()
	s.metrics.RecordChatMessage(string(models.ChatSenderUser))

	if err := queue.EnqueueAfter(s.replyDelay(), jobs.Job{Type: JobChatReply, Payload: chatReplyPayload{Text: text}}); err != nil {
		s.mu.Lock()
		s.pending--
		s.mu.Unlock()
		s.logger.Warn("failed to schedule chat reply", zap.Error(err))
		return s.Transcript(), appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to schedule reply")
	}
	return s.Transcript(), nil
}

// Transcript returns every message and whether a reply is pending.
func (s *ChatbotService) Transcript() dto.ChatTranscriptResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return dto.ChatTranscriptResponse{
		Messages: append([]models.ChatMessage{}, s.messages...),
		Typing:   s.pending > 0,
	}
}

func (s *ChatbotService) handleReply(_ context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(chatReplyPayload)
	if !ok {
		return fmt.Errorf("chat reply: unexpected payload %T", job.Payload)
	}
	view := models.ViewDashboard
	if s.views != nil {
		view = s.views.Current()
	}
	s.rngMu.Lock()
	reply := Respond(s.script, payload.Text, view, s.rng)
	s.rngMu.Unlock()

	s.mu.Lock()
	if s.pending > 0 {
		s.pending--
	}
	s.messages = append(s.messages, models.ChatMessage{Sender: models.ChatSenderBot, Text: reply, SentAt: s.now().UTC()})
	s.mu.Unlock()
	s.metrics.RecordChatMessage(string(models.ChatSenderBot))
	return nil
}

// replyDelay draws uniformly from [MinDelay, MaxDelay] at millisecond resolution.
func (s *ChatbotService) replyDelay() time.Duration {
	spread := int((s.config.MaxDelay - s.config.MinDelay) / time.Millisecond)
	if spread <= 0 {
		return s.config.MinDelay
	}
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.config.MinDelay + time.Duration(s.rng.Intn(spread+1))*time.Millisecond
}
