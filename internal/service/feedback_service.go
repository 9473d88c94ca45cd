package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/workshop-hub-api/internal/dto"
	"github.com/noah-isme/workshop-hub-api/internal/models"
	appErrors "github.com/noah-isme/workshop-hub-api/pkg/errors"
)

// MessageFeedbackRecorded confirms a survey submission.
const MessageFeedbackRecorded = "Thank you for your feedback! Your responses have been recorded."

// FeedbackRepository stores survey answers.
type FeedbackRepository interface {
	Create(ctx context.Context, fb *models.Feedback) error
	AverageRating(ctx context.Context) (float64, int, error)
}

// FeedbackStats summarises collected survey answers.
type FeedbackStats struct {
	AverageRating float64 `json:"average_rating"`
	Responses     int     `json:"responses"`
}

// FeedbackService validates and records post-session surveys.
type FeedbackService struct {
	repo      FeedbackRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewFeedbackService constructs the feedback service.
func NewFeedbackService(repo FeedbackRepository, validate *validator.Validate, logger *zap.Logger) *FeedbackService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedbackService{repo: repo, validator: validate, logger: logger, now: time.Now}
}

// Submit stores one survey answer, linking it to the pass holder when present.
func (s *FeedbackService) Submit(ctx context.Context, req dto.FeedbackRequest, claims *models.PassClaims) (*models.Feedback, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "ratings must be between 1 and 5")
	}
	fb := &models.Feedback{
		ID:            uuid.NewString(),
		Rating:        req.Rating,
		ContentRating: req.ContentRating,
		Recommend:     req.Recommend,
		Comments:      strings.TrimSpace(req.Comments),
		CreatedAt:     s.now().UTC(),
	}
	if claims != nil && claims.RegistrationID != "" {
		rid := claims.RegistrationID
		fb.RegistrationID = &rid
	}
	if err := s.repo.Create(ctx, fb); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store feedback")
	}
	s.logger.Info("feedback recorded", zap.String("feedback_id", fb.ID), zap.Int("rating", fb.Rating))
	return fb, nil
}

// Stats returns the average overall rating.
func (s *FeedbackService) Stats(ctx context.Context) (*FeedbackStats, error) {
	avg, count, err := s.repo.AverageRating(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load feedback stats")
	}
	return &FeedbackStats{AverageRating: avg, Responses: count}, nil
}
