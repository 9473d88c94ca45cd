package dto

import "github.com/noah-isme/workshop-hub-api/internal/models"

// RenderedView wraps one view description with its name.
type RenderedView struct {
	View    models.View `json:"view"`
	Content interface{} `json:"content"`
}

// DashboardView is the landing section: header, live counter, activity feed and summary.
type DashboardView struct {
	Workshop        models.Workshop   `json:"workshop"`
	LiveCount       int               `json:"liveCount"`
	Activities      []models.Activity `json:"activities"`
	Summary         []string          `json:"summary"`
	SummaryComplete bool              `json:"summaryComplete"`
}

// StepIndicator is one bubble of the wizard progress bar.
type StepIndicator struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Active bool   `json:"active"`
}

// WizardButtons lists which wizard controls are visible.
type WizardButtons struct {
	Back   bool `json:"back"`
	Next   bool `json:"next"`
	Submit bool `json:"submit"`
}

// RegistrationView renders the wizard.
type RegistrationView struct {
	Step    int                          `json:"step"`
	Steps   []StepIndicator              `json:"steps"`
	Fields  []string                     `json:"fields"`
	Draft   map[string]string            `json:"draft"`
	Errors  map[string]models.FieldError `json:"errors"`
	Buttons WizardButtons                `json:"buttons"`
}

// ModuleItem is one row of the module list.
type ModuleItem struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Meta      string `json:"meta"`
	Completed bool   `json:"completed"`
	Active    bool   `json:"active"`
}

// MaterialItem is one learning material tile.
type MaterialItem struct {
	Kind  string `json:"kind"`
	Icon  string `json:"icon"`
	Title string `json:"title"`
	Meta  string `json:"meta"`
}

// ModuleDetail describes the selected module.
type ModuleDetail struct {
	ID        int            `json:"id"`
	Title     string         `json:"title"`
	Duration  string         `json:"duration"`
	Materials []MaterialItem `json:"materials"`
	Progress  int            `json:"progress"`
	Remaining string         `json:"remaining"`
}

// ContentView lists modules and the selected one.
type ContentView struct {
	Modules []ModuleItem  `json:"modules"`
	Current *ModuleDetail `json:"current,omitempty"`
}

// ParticipantRow is one roster line.
type ParticipantRow struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Status      string `json:"status"`
	StatusClass string `json:"statusClass"`
	Progress    string `json:"progress"`
}

// TrackingView renders the live roster.
type TrackingView struct {
	ParticipantCount int              `json:"participantCount"`
	Participants     []ParticipantRow `json:"participants"`
}

// FeedbackView describes the survey form.
type FeedbackView struct {
	Questions []string `json:"questions"`
	Scale     []int    `json:"scale"`
}

// CertificateView describes the certificate section.
type CertificateView struct {
	Workshop   string   `json:"workshop"`
	Instructor string   `json:"instructor"`
	Duration   string   `json:"duration"`
	Actions    []string `json:"actions"`
}

// RenderEvent tells subscribers that a view should be redrawn.
type RenderEvent struct {
	View   models.View `json:"view"`
	Reason string      `json:"reason"`
}
