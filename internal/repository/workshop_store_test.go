package repository

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/workshop-hub-api/internal/dataset"
	"github.com/noah-isme/workshop-hub-api/internal/models"
	appErrors "github.com/noah-isme/workshop-hub-api/pkg/errors"
)

func newSeededStore(t *testing.T) *WorkshopStore {
	t.Helper()
	ds, err := dataset.Default()
	require.NoError(t, err)
	return NewWorkshopStore(ds)
}

func TestWorkshopStoreSeed(t *testing.T) {
	store := newSeededStore(t)
	state := store.State()

	assert.Equal(t, 347, state.LiveCount)
	assert.Len(t, state.Participants, 8)
	assert.Equal(t, "Advanced React Development Workshop", store.Workshop().Title)
}

func TestWorkshopStoreStateIsCopy(t *testing.T) {
	store := newSeededStore(t)
	state := store.State()
	state.Participants[0].Progress = 1

	assert.Equal(t, 75, store.State().Participants[0].Progress)
}

func TestWorkshopStoreUpdate(t *testing.T) {
	store := newSeededStore(t)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Update(func(s *models.LiveState) { s.LiveCount++ })
		}()
	}
	wg.Wait()

	assert.Equal(t, 397, store.State().LiveCount)
}

func TestWorkshopStoreListParticipants(t *testing.T) {
	store := newSeededStore(t)

	page, total := store.ListParticipants(2, 3)
	assert.Equal(t, 8, total)
	require.Len(t, page, 3)
	assert.Equal(t, 4, page[0].ID)

	last, _ := store.ListParticipants(3, 3)
	assert.Len(t, last, 2)

	empty, _ := store.ListParticipants(4, 3)
	assert.Empty(t, empty)
}

func TestWorkshopStoreListParticipantsOutOfRange(t *testing.T) {
	store := newSeededStore(t)

	for _, tc := range []struct{ page, size int }{
		{math.MaxInt, 100},
		{100000000000000000, 100},
		{2, math.MaxInt},
		{0, 3},
		{1, 0},
	} {
		page, total := store.ListParticipants(tc.page, tc.size)
		assert.Empty(t, page, "page=%d size=%d", tc.page, tc.size)
		assert.Equal(t, 8, total)
	}

	all, _ := store.ListParticipants(1, math.MaxInt)
	assert.Len(t, all, 8)
}

func TestWorkshopStoreSelectModuleKeepsSingleCurrent(t *testing.T) {
	store := newSeededStore(t)

	selected, err := store.SelectModule(4)
	require.NoError(t, err)
	assert.True(t, selected.Current)

	current := 0
	for _, m := range store.State().Modules {
		if m.Current {
			current++
			assert.Equal(t, 4, m.ID)
		}
	}
	assert.Equal(t, 1, current)
}

func TestWorkshopStoreSelectUnknownModule(t *testing.T) {
	store := newSeededStore(t)
	_, err := store.SelectModule(42)
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}
