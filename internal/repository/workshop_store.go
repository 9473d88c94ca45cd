package repository

import (
	"sync"

	"github.com/noah-isme/workshop-hub-api/internal/dataset"
	"github.com/noah-isme/workshop-hub-api/internal/models"
	appErrors "github.com/noah-isme/workshop-hub-api/pkg/errors"
)

// WorkshopStore is the single owner of the live workshop state. Every read and write goes
// through its lock so periodic tasks and request handlers never observe a half-applied change.
type WorkshopStore struct {
	mu       sync.RWMutex
	workshop models.Workshop
	state    models.LiveState
}

// NewWorkshopStore seeds the store from a dataset.
func NewWorkshopStore(ds *dataset.Dataset) *WorkshopStore {
	state := models.LiveState{
		LiveCount:    ds.Workshop.Attendees,
		Participants: ds.Participants,
		Modules:      ds.Modules,
		Activities:   ds.Activities,
		Summary:      ds.Summary,
	}
	return &WorkshopStore{workshop: ds.Workshop, state: state.Clone()}
}

// Workshop returns the static session header.
func (s *WorkshopStore) Workshop() models.Workshop {
	return s.workshop
}

// State returns a deep copy of the live state.
func (s *WorkshopStore) State() models.LiveState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Update applies fn to the live state while holding the write lock.
func (s *WorkshopStore) Update(fn func(state *models.LiveState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
}

// ListParticipants returns one page of the roster and the total roster size.
func (s *WorkshopStore) ListParticipants(page, size int) ([]models.Participant, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := len(s.state.Participants)
	// Compare page indexes before multiplying so huge pages cannot overflow.
	if total == 0 || page < 1 || size < 1 || page-1 > (total-1)/size {
		return []models.Participant{}, total
	}
	start := (page - 1) * size
	end := start + size
	if end > total || end < start {
		end = total
	}
	return append([]models.Participant(nil), s.state.Participants[start:end]...), total
}

// SelectModule marks the module current and clears the flag on every other module.
func (s *WorkshopStore) SelectModule(id int) (models.Module, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i := range s.state.Modules {
		if s.state.Modules[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Module{}, appErrors.Clone(appErrors.ErrNotFound, "module not found")
	}
	for i := range s.state.Modules {
		s.state.Modules[i].Current = i == idx
	}
	selected := s.state.Modules[idx]
	selected.Materials = append([]string(nil), selected.Materials...)
	return selected, nil
}
