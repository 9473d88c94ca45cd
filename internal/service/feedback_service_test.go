package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/workshop-hub-api/internal/dto"
	"github.com/noah-isme/workshop-hub-api/internal/models"
	"github.com/noah-isme/workshop-hub-api/internal/repository"
	appErrors "github.com/noah-isme/workshop-hub-api/pkg/errors"
)

type failingFeedbackRepo struct{}

func (failingFeedbackRepo) Create(context.Context, *models.Feedback) error { return errors.New("boom") }
func (failingFeedbackRepo) AverageRating(context.Context) (float64, int, error) {
	return 0, 0, errors.New("boom")
}

func TestFeedbackSubmit(t *testing.T) {
	repo := repository.NewMemoryFeedbackRepository()
	svc := NewFeedbackService(repo, nil, nil)

	fb, err := svc.Submit(context.Background(), dto.FeedbackRequest{Rating: 5, ContentRating: 4, Recommend: true, Comments: "  great  "}, &models.PassClaims{RegistrationID: "reg-1"})
	require.NoError(t, err)
	assert.Equal(t, "great", fb.Comments)
	require.NotNil(t, fb.RegistrationID)
	assert.Equal(t, "reg-1", *fb.RegistrationID)

	_, err = svc.Submit(context.Background(), dto.FeedbackRequest{Rating: 3, ContentRating: 3}, nil)
	require.NoError(t, err)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Responses)
	assert.InDelta(t, 4.0, stats.AverageRating, 0.001)
}

func TestFeedbackSubmitValidation(t *testing.T) {
	svc := NewFeedbackService(repository.NewMemoryFeedbackRepository(), nil, nil)
	for _, req := range []dto.FeedbackRequest{
		{Rating: 0, ContentRating: 3},
		{Rating: 6, ContentRating: 3},
		{Rating: 3, ContentRating: 9},
	} {
		_, err := svc.Submit(context.Background(), req, nil)
		requireCode(t, err, appErrors.ErrValidation.Code)
	}
}

func TestFeedbackRepositoryFailure(t *testing.T) {
	svc := NewFeedbackService(failingFeedbackRepo{}, nil, nil)
	_, err := svc.Submit(context.Background(), dto.FeedbackRequest{Rating: 3, ContentRating: 3}, nil)
	requireCode(t, err, appErrors.ErrInternal.Code)
	_, err = svc.Stats(context.Background())
	requireCode(t, err, appErrors.ErrInternal.Code)
}
