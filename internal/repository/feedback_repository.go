package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/workshop-hub-api/internal/models"
)

// FeedbackRepository persists survey answers in PostgreSQL.
type FeedbackRepository struct {
	db *sqlx.DB
}

// NewFeedbackRepository creates the repository.
func NewFeedbackRepository(db *sqlx.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Create inserts a feedback row.
func (r *FeedbackRepository) Create(ctx context.Context, fb *models.Feedback) error {
	query := `INSERT INTO feedback (id, registration_id, rating, content_rating, recommend, comments, created_at)
VALUES (:id, :registration_id, :rating, :content_rating, :recommend, :comments, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, fb); err != nil {
		return fmt.Errorf("create feedback: %w", err)
	}
	return nil
}

// AverageRating returns the mean overall rating and the number of answers.
func (r *FeedbackRepository) AverageRating(ctx context.Context) (float64, int, error) {
	var row struct {
		Avg   float64 `db:"avg"`
		Count int     `db:"count"`
	}
	if err := r.db.GetContext(ctx, &row, `SELECT COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count FROM feedback`); err != nil {
		return 0, 0, fmt.Errorf("average feedback rating: %w", err)
	}
	return row.Avg, row.Count, nil
}

// MemoryFeedbackRepository keeps survey answers in process.
type MemoryFeedbackRepository struct {
	mu   sync.RWMutex
	rows []models.Feedback
}

// NewMemoryFeedbackRepository creates an empty in-memory repository.
func NewMemoryFeedbackRepository() *MemoryFeedbackRepository {
	return &MemoryFeedbackRepository{}
}

// Create appends a feedback row.
func (r *MemoryFeedbackRepository) Create(_ context.Context, fb *models.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, *fb)
	return nil
}

// AverageRating returns the mean overall rating and the number of answers.
func (r *MemoryFeedbackRepository) AverageRating(context.Context) (float64, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.rows) == 0 {
		return 0, 0, nil
	}
	sum := 0
	for _, fb := range r.rows {
		sum += fb.Rating
	}
	return float64(sum) / float64(len(r.rows)), len(r.rows), nil
}
