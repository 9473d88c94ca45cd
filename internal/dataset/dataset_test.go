package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/workshop-hub-api/internal/models"
)

func TestDefaultDataset(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)

	assert.Equal(t, 347, ds.Workshop.Attendees)
	assert.Len(t, ds.Participants, 8)
	assert.Len(t, ds.Modules, 5)
	assert.Len(t, ds.ActivityEvents, 8)
	assert.Len(t, ds.Summary, 5)
	assert.Len(t, ds.SummaryPoints, 8)
	assert.Len(t, ds.Chat.Generic, 4)
	require.Len(t, ds.Chat.Keywords, 8)
	assert.Equal(t, "greeting", ds.Chat.Keywords[0].Keyword)
	assert.Equal(t, "react hooks", ds.Chat.Keywords[1].Keyword)
	assert.Equal(t, "components", ds.Chat.Keywords[7].Keyword)
	assert.Contains(t, ds.Chat.Context, models.ViewTracking)

	assert.Equal(t, 100, ds.Modules[0].Progress)
	assert.Equal(t, 45, ds.Modules[2].Progress)
	assert.True(t, ds.Modules[2].Current)
	assert.Equal(t, "09:15", ds.Participants[0].JoinTime)
}

func TestParseRejectsDuplicateParticipants(t *testing.T) {
	_, err := Parse([]byte(`
participants:
  - {id: 1, name: A, status: active, progress: 1}
  - {id: 1, name: B, status: idle, progress: 2}
activityEvents: [x]
chat: {generic: [y]}
`))
	assert.ErrorContains(t, err, "duplicate participant id 1")
}

func TestParseRejectsTwoCurrentModules(t *testing.T) {
	_, err := Parse([]byte(`
modules:
  - {id: 1, current: true}
  - {id: 2, current: true}
activityEvents: [x]
chat: {generic: [y]}
`))
	assert.ErrorContains(t, err, "at most one")
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
workshop: {title: Go Basics, attendees: 320}
activityEvents: [joined]
chat: {generic: [hi]}
`), 0o600))

	ds, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Go Basics", ds.Workshop.Title)
	assert.Equal(t, 320, ds.Workshop.Attendees)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
