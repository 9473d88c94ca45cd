// Package render turns workshop snapshots into view descriptions. Every function here is pure:
// the same snapshot always renders the same view, and nothing is mutated.
package render

import (
	"fmt"
	"strings"

	"github.com/noah-isme/workshop-hub-api/internal/dto"
	"github.com/noah-isme/workshop-hub-api/internal/models"
)

var materialIcons = map[string]string{
	"video":         "📹",
	"pdf":           "📄",
	"presentation":  "📊",
	"quiz":          "❓",
	"exercises":     "💻",
	"code-examples": "💻",
	"lab":           "🧪",
	"resources":     "📚",
	"demo":          "🎯",
}

const defaultMaterialIcon = "📄"

// View renders the named view. Unknown views return false.
func View(view models.View, snap models.Snapshot) (dto.RenderedView, bool) {
	var content interface{}
	switch view {
	case models.ViewDashboard:
		content = Dashboard(snap)
	case models.ViewRegistration:
		content = Registration(snap.Registration)
	case models.ViewContent:
		content = Content(snap.State)
	case models.ViewTracking:
		content = Tracking(snap.State)
	case models.ViewFeedback:
		content = Feedback()
	case models.ViewCertificate:
		content = Certificate(snap.Workshop)
	default:
		return dto.RenderedView{}, false
	}
	return dto.RenderedView{View: view, Content: content}, true
}

// Dashboard renders the landing view.
func Dashboard(snap models.Snapshot) dto.DashboardView {
	return dto.DashboardView{
		Workshop:        snap.Workshop,
		LiveCount:       snap.State.LiveCount,
		Activities:      append([]models.Activity{}, snap.State.Activities...),
		Summary:         append([]string{}, snap.State.Summary...),
		SummaryComplete: len(snap.State.Summary) >= models.SummaryCapacity,
	}
}

// Registration renders the wizard at its current step.
func Registration(state models.RegistrationState) dto.RegistrationView {
	steps := make([]dto.StepIndicator, 0, models.LastStep)
	for n := models.FirstStep; n <= models.LastStep; n++ {
		steps = append(steps, dto.StepIndicator{Number: n, Title: models.StepTitles[n], Active: n <= state.Step})
	}
	fields := make([]string, 0, 4)
	for _, f := range models.FieldsForStep(state.Step) {
		fields = append(fields, f.Name)
	}
	draft := make(map[string]string, len(state.Draft))
	for k, v := range state.Draft {
		draft[k] = v
	}
	errs := make(map[string]models.FieldError, len(state.Errors))
	for k, v := range state.Errors {
		errs[k] = v
	}
	return dto.RegistrationView{
		Step:   state.Step,
		Steps:  steps,
		Fields: fields,
		Draft:  draft,
		Errors: errs,
		Buttons: dto.WizardButtons{
			Back:   state.Step > models.FirstStep,
			Next:   state.Step < models.LastStep,
			Submit: state.Step == models.LastStep,
		},
	}
}

// Content renders the module list and the current module detail.
func Content(state models.LiveState) dto.ContentView {
	view := dto.ContentView{Modules: make([]dto.ModuleItem, 0, len(state.Modules))}
	for _, m := range state.Modules {
		view.Modules = append(view.Modules, dto.ModuleItem{
			ID:        m.ID,
			Title:     m.Title,
			Meta:      fmt.Sprintf("%s • %d materials", m.Duration, len(m.Materials)),
			Completed: m.Completed,
			Active:    m.Current,
		})
	}
	if current, ok := state.CurrentModule(); ok {
		detail := ModuleDetail(current)
		view.Current = &detail
	}
	return view
}

// ModuleDetail renders the selected module panel.
func ModuleDetail(m models.Module) dto.ModuleDetail {
	materials := make([]dto.MaterialItem, 0, len(m.Materials))
	for _, kind := range m.Materials {
		icon, ok := materialIcons[kind]
		if !ok {
			icon = defaultMaterialIcon
		}
		materials = append(materials, dto.MaterialItem{
			Kind:  kind,
			Icon:  icon,
			Title: materialTitle(kind),
			Meta:  "Interactive content",
		})
	}
	remaining := "Completed"
	if m.Progress < models.MaxProgress {
		remaining = fmt.Sprintf("%d min remaining", m.RemainingMinutes())
	}
	return dto.ModuleDetail{
		ID:        m.ID,
		Title:     m.Title,
		Duration:  m.Duration,
		Materials: materials,
		Progress:  m.Progress,
		Remaining: remaining,
	}
}

// materialTitle capitalises the tag and replaces its first hyphen with a space.
func materialTitle(kind string) string {
	if kind == "" {
		return ""
	}
	title := strings.ToUpper(kind[:1]) + kind[1:]
	return strings.Replace(title, "-", " ", 1)
}

// Tracking renders the roster. The header count mirrors the live attendee counter.
func Tracking(state models.LiveState) dto.TrackingView {
	rows := make([]dto.ParticipantRow, 0, len(state.Participants))
	for _, p := range state.Participants {
		rows = append(rows, ParticipantRow(p))
	}
	return dto.TrackingView{ParticipantCount: state.LiveCount, Participants: rows}
}

// ParticipantRow renders one roster line.
func ParticipantRow(p models.Participant) dto.ParticipantRow {
	class := "warning"
	if p.Status == models.ParticipantActive {
		class = "success"
	}
	return dto.ParticipantRow{
		ID:          p.ID,
		Name:        p.Name,
		Location:    fmt.Sprintf("%s • Joined %s", p.Location, p.JoinTime),
		Status:      string(p.Status),
		StatusClass: class,
		Progress:    fmt.Sprintf("%d%%", p.Progress),
	}
}

// Feedback renders the survey form description.
func Feedback() dto.FeedbackView {
	return dto.FeedbackView{
		Questions: []string{
			"How would you rate the workshop overall?",
			"How relevant was the content to your work?",
			"Would you recommend this workshop to a colleague?",
			"Any other comments?",
		},
		Scale: []int{1, 2, 3, 4, 5},
	}
}

// Certificate renders the certificate section.
func Certificate(w models.Workshop) dto.CertificateView {
	return dto.CertificateView{
		Workshop:   w.Title,
		Instructor: w.Instructor,
		Duration:   w.Duration,
		Actions:    []string{"download", "email"},
	}
}
