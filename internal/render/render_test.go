package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/workshop-hub-api/internal/dto"
	"github.com/noah-isme/workshop-hub-api/internal/models"
)

func sampleSnapshot() models.Snapshot {
	return models.Snapshot{
		Workshop: models.Workshop{Title: "Go Live", Instructor: "Rob", Duration: "2 hours"},
		State: models.LiveState{
			LiveCount: 321,
			Participants: []models.Participant{
				{ID: 1, Name: "Alex Chen", Status: models.ParticipantActive, Progress: 75, JoinTime: "09:15", Location: "San Francisco"},
				{ID: 2, Name: "David Kim", Status: models.ParticipantIdle, Progress: 52, JoinTime: "09:25", Location: "Tokyo"},
			},
			Modules: []models.Module{
				{ID: 1, Title: "Hooks", Completed: true, Progress: 100, Duration: "45 min", Materials: []string{"video", "pdf", "quiz"}},
				{ID: 3, Title: "Patterns", Current: true, Progress: 45, Duration: "50 min", Materials: []string{"video", "code-examples", "hologram"}},
			},
			Activities: []models.Activity{{Age: "Just now", Text: "joined"}},
			Summary:    []string{"a", "b"},
		},
		Registration: models.RegistrationState{Step: 2, Draft: map[string]string{"firstName": "Ada"}},
	}
}

func TestViewDispatch(t *testing.T) {
	snap := sampleSnapshot()
	for _, v := range models.Views() {
		rendered, ok := View(v, snap)
		require.True(t, ok, v)
		assert.Equal(t, v, rendered.View)
		assert.NotNil(t, rendered.Content)
	}
	_, ok := View("settings", snap)
	assert.False(t, ok)
}

func TestDashboard(t *testing.T) {
	view := Dashboard(sampleSnapshot())
	assert.Equal(t, 321, view.LiveCount)
	assert.Len(t, view.Activities, 1)
	assert.False(t, view.SummaryComplete)
}

func TestRegistrationButtons(t *testing.T) {
	view := Registration(models.RegistrationState{Step: 1})
	assert.Equal(t, dto.WizardButtons{Back: false, Next: true, Submit: false}, view.Buttons)
	assert.Equal(t, []string{"firstName", "lastName", "email", "phone"}, view.Fields)

	view = Registration(models.RegistrationState{Step: 3})
	assert.Equal(t, dto.WizardButtons{Back: true, Next: false, Submit: true}, view.Buttons)
	require.Len(t, view.Steps, 3)
	for _, s := range view.Steps {
		assert.True(t, s.Active)
	}

	view = Registration(models.RegistrationState{Step: 2})
	assert.True(t, view.Steps[1].Active)
	assert.False(t, view.Steps[2].Active)
}

func TestContent(t *testing.T) {
	view := Content(sampleSnapshot().State)
	require.Len(t, view.Modules, 2)
	assert.Equal(t, "45 min • 3 materials", view.Modules[0].Meta)
	assert.True(t, view.Modules[1].Active)

	require.NotNil(t, view.Current)
	assert.Equal(t, 3, view.Current.ID)
	assert.Equal(t, "28 min remaining", view.Current.Remaining)
	require.Len(t, view.Current.Materials, 3)
	assert.Equal(t, "Code examples", view.Current.Materials[1].Title)
	assert.Equal(t, "💻", view.Current.Materials[1].Icon)
	assert.Equal(t, "📄", view.Current.Materials[2].Icon)
}

func TestModuleDetailCompleted(t *testing.T) {
	detail := ModuleDetail(models.Module{Progress: 100})
	assert.Equal(t, "Completed", detail.Remaining)
}

func TestContentWithoutCurrent(t *testing.T) {
	view := Content(models.LiveState{Modules: []models.Module{{ID: 1}}})
	assert.Nil(t, view.Current)
}

func TestTracking(t *testing.T) {
	view := Tracking(sampleSnapshot().State)
	assert.Equal(t, 321, view.ParticipantCount)
	require.Len(t, view.Participants, 2)
	assert.Equal(t, "San Francisco • Joined 09:15", view.Participants[0].Location)
	assert.Equal(t, "success", view.Participants[0].StatusClass)
	assert.Equal(t, "warning", view.Participants[1].StatusClass)
	assert.Equal(t, "75%", view.Participants[0].Progress)
}

func TestRenderDoesNotAliasSnapshot(t *testing.T) {
	snap := sampleSnapshot()
	view := Dashboard(snap)
	view.Summary[0] = "changed"
	assert.Equal(t, "a", snap.State.Summary[0])
}
