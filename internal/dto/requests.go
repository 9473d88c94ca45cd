package dto

import "github.com/noah-isme/workshop-hub-api/internal/models"

// SelectViewRequest switches the visible view.
type SelectViewRequest struct {
	View models.View `json:"view" binding:"required"`
}

// FieldValueRequest sets one wizard field.
type FieldValueRequest struct {
	Value string `json:"value"`
}

// ChatMessageRequest is a user chat line.
type ChatMessageRequest struct {
	Text string `json:"text"`
}

// ChatTranscriptResponse is the transcript plus the typing indicator.
type ChatTranscriptResponse struct {
	Messages []models.ChatMessage `json:"messages"`
	Typing   bool                 `json:"typing"`
}

// FeedbackRequest is the survey payload.
type FeedbackRequest struct {
	Rating        int    `json:"rating" validate:"required,min=1,max=5"`
	ContentRating int    `json:"content_rating" validate:"required,min=1,max=5"`
	Recommend     bool   `json:"recommend"`
	Comments      string `json:"comments" validate:"max=2000"`
}

// CertificateRequest picks how the certificate is delivered.
type CertificateRequest struct {
	Delivery string `json:"delivery" validate:"required,oneof=download email"`
}

// SummaryExportRequest picks the export format.
type SummaryExportRequest struct {
	Format string `json:"format" validate:"required,oneof=csv pdf"`
}

// ExportResponse points at a stored export.
type ExportResponse struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	DownloadURL string `json:"download_url,omitempty"`
	ExpiresAt   string `json:"expires_at,omitempty"`
}

// SubmitRegistrationResponse is returned after a successful submit.
type SubmitRegistrationResponse struct {
	Registration models.Registration      `json:"registration"`
	Pass         *models.IssuedPass       `json:"pass,omitempty"`
	State        models.RegistrationState `json:"state"`
}
