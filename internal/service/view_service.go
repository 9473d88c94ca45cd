package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/workshop-hub-api/internal/dto"
	"github.com/noah-isme/workshop-hub-api/internal/models"
	"github.com/noah-isme/workshop-hub-api/internal/render"
	appErrors "github.com/noah-isme/workshop-hub-api/pkg/errors"
)

const (
	defaultParticipantPage = 20
	maxParticipantPage     = 100
	subscriberBuffer       = 16
)

type workshopReader interface {
	Workshop() models.Workshop
	State() models.LiveState
	ListParticipants(page, size int) ([]models.Participant, int)
	SelectModule(id int) (models.Module, error)
}

type wizardStateReader interface {
	State() models.RegistrationState
}

type cachedView struct {
	View    models.View     `json:"view"`
	Content json.RawMessage `json:"content"`
}

// ViewService owns the current view, renders views from store snapshots and fans render
// events out to subscribers.
type ViewService struct {
	mu      sync.RWMutex
	current models.View

	store  workshopReader
	wizard wizardStateReader
	cache  *CacheService
	logger *zap.Logger

	// genMu orders cache writes against invalidations; a render only reaches the cache when
	// no Touch of its view happened since its snapshot was taken.
	genMu       sync.Mutex
	generations map[models.View]uint64

	subMu  sync.Mutex
	subs   map[int]chan dto.RenderEvent
	nextID int
}

// NewViewService starts on the dashboard view.
func NewViewService(store workshopReader, wizard wizardStateReader, cache *CacheService, logger *zap.Logger) *ViewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ViewService{
		current: models.ViewDashboard,
		store:   store,
		wizard:  wizard,
		cache:   cache,
		logger:  logger,

		generations: make(map[models.View]uint64),
		subs:        make(map[int]chan dto.RenderEvent),
	}
}

// Current returns the visible view.
func (s *ViewService) Current() models.View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Select switches the visible view and renders it.
func (s *ViewService) Select(ctx context.Context, view models.View) (dto.RenderedView, bool, error) {
	if !view.Valid() {
		return dto.RenderedView{}, false, unknownView(view)
	}
	s.mu.Lock()
	s.current = view
	s.mu.Unlock()

	s.publish(dto.RenderEvent{View: view, Reason: "view.selected"})
	return s.Render(ctx, view)
}

// RenderCurrent renders the visible view.
func (s *ViewService) RenderCurrent(ctx context.Context) (dto.RenderedView, bool, error) {
	return s.Render(ctx, s.Current())
}

// Render returns the description of view, reading through the cache when enabled. The bool
// reports a cache hit.
func (s *ViewService) Render(ctx context.Context, view models.View) (dto.RenderedView, bool, error) {
	if !view.Valid() {
		return dto.RenderedView{}, false, unknownView(view)
	}
	key := ViewCacheKey(view)
	var cached cachedView
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return dto.RenderedView{View: cached.View, Content: cached.Content}, true, nil
	}

	gen := s.generation(view)
	rendered, _ := render.View(view, s.snapshot())
	if s.cache.Enabled() {
		if raw, err := json.Marshal(rendered.Content); err == nil {
			s.storeRender(ctx, key, gen, cachedView{View: view, Content: raw})
		}
	}
	return rendered, false, nil
}

func (s *ViewService) generation(view models.View) uint64 {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	return s.generations[view]
}

// storeRender writes a render taken at generation gen unless its view was touched since.
func (s *ViewService) storeRender(ctx context.Context, key string, gen uint64, value cachedView) {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	if s.generations[value.View] != gen {
		s.logger.Debug("stale render not cached", zap.String("view", string(value.View)))
		return
	}
	_ = s.cache.Set(ctx, key, value)
}

func (s *ViewService) snapshot() models.Snapshot {
	snap := models.Snapshot{
		Workshop:    s.store.Workshop(),
		State:       s.store.State(),
		CurrentView: s.Current(),
	}
	if s.wizard != nil {
		snap.Registration = s.wizard.State()
	} else {
		snap.Registration = models.RegistrationState{Step: models.FirstStep}
	}
	return snap
}

// SelectModule marks a module current and returns its detail.
func (s *ViewService) SelectModule(ctx context.Context, id int) (dto.ModuleDetail, error) {
	module, err := s.store.SelectModule(id)
	if err != nil {
		return dto.ModuleDetail{}, err
	}
	s.Touch(ctx, "module.selected", models.ViewContent)
	return render.ModuleDetail(module), nil
}

// Participants returns one page of roster rows. Page defaults to 1 and size to 20, capped at 100.
func (s *ViewService) Participants(page, size int) ([]dto.ParticipantRow, *models.Pagination) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = defaultParticipantPage
	}
	if size > maxParticipantPage {
		size = maxParticipantPage
	}
	participants, total := s.store.ListParticipants(page, size)
	rows := make([]dto.ParticipantRow, 0, len(participants))
	for _, p := range participants {
		rows = append(rows, render.ParticipantRow(p))
	}
	return rows, &models.Pagination{Page: page, PageSize: size, TotalCount: total}
}

// Touch drops cached renders of views and signals subscribers when the visible view is one of them.
func (s *ViewService) Touch(ctx context.Context, reason string, views ...models.View) {
	s.genMu.Lock()
	for _, v := range views {
		s.generations[v]++
	}
	_ = s.cache.InvalidateViews(ctx, views...)
	s.genMu.Unlock()

	current := s.Current()
	for _, v := range views {
		if v == current {
			s.publish(dto.RenderEvent{View: current, Reason: reason})
			return
		}
	}
}

// Subscribe registers a listener for render events. The returned func unsubscribes and closes
// the channel.
func (s *ViewService) Subscribe() (<-chan dto.RenderEvent, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextID
	s.nextID++
	ch := make(chan dto.RenderEvent, subscriberBuffer)
	s.subs[id] = ch
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}

// publish never blocks: a subscriber that falls behind misses events, not state.
func (s *ViewService) publish(evt dto.RenderEvent) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for id, ch := range s.subs {
		select {
		case ch <- evt:
		default:
			s.logger.Debug("render event dropped", zap.Int("subscriber", id), zap.String("view", string(evt.View)))
		}
	}
}

func unknownView(view models.View) error {
	return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown view %q", view))
}
