package models

import "time"

// Feedback is a post-session survey answer.
type Feedback struct {
	ID             string    `db:"id" json:"id"`
	RegistrationID *string   `db:"registration_id" json:"registration_id,omitempty"`
	Rating         int       `db:"rating" json:"rating"`
	ContentRating  int       `db:"content_rating" json:"content_rating"`
	Recommend      bool      `db:"recommend" json:"recommend"`
	Comments       string    `db:"comments" json:"comments"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
