package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/workshop-hub-api/internal/models"
	"github.com/noah-isme/workshop-hub-api/pkg/jobs"
)

// Simulation task names double as job types on the shared queue.
const (
	TaskLiveCount = "simulation.live-count"
	TaskActivity  = "simulation.activity"
	TaskSummary   = "simulation.summary"
	TaskProgress  = "simulation.progress"
)

// Live counter bounds.
const (
	MinLiveCount = 300
	MaxLiveCount = 500
)

// Random is the subset of *rand.Rand the simulation and chatbot draw from.
type Random interface {
	Intn(n int) int
	Float64() float64
}

type liveStateStore interface {
	State() models.LiveState
	Update(fn func(state *models.LiveState))
}

type jobScheduler interface {
	Every(interval time.Duration, jobType string) error
}

// SimulationConfig sets the period of each task.
type SimulationConfig struct {
	CounterInterval  time.Duration
	ActivityInterval time.Duration
	SummaryInterval  time.Duration
	ProgressInterval time.Duration
}

// DriftLiveCount nudges the live counter by a value in [-5,4] and clamps it to [300,500].
func DriftLiveCount(state *models.LiveState, rng Random) {
	next := state.LiveCount + rng.Intn(10) - 5
	if next < MinLiveCount {
		next = MinLiveCount
	}
	if next > MaxLiveCount {
		next = MaxLiveCount
	}
	state.LiveCount = next
}

// AddActivity pushes a random event to the head of the feed, evicts past capacity and relabels
// every entry's age by position.
func AddActivity(state *models.LiveState, events []string, rng Random) {
	if len(events) == 0 {
		return
	}
	entry := models.Activity{Text: events[rng.Intn(len(events))]}
	feed := append([]models.Activity{entry}, state.Activities...)
	if len(feed) > models.ActivityFeedCapacity {
		feed = feed[:models.ActivityFeedCapacity]
	}
	for i := range feed {
		feed[i].Age = models.ActivityAges[i]
	}
	state.Activities = feed
}

// GrowSummary appends the next point while the summary is short of capacity. It reports
// whether a line was added.
func GrowSummary(state *models.LiveState, points []string) bool {
	n := len(state.Summary)
	if n >= models.SummaryCapacity || n >= len(points) {
		return false
	}
	state.Summary = append(state.Summary, points[n])
	return true
}

// DriftProgress advances one to three randomly picked participants (repeats allowed) by 1..5
// percent, capped at 100, flipping each pick's status with 10% probability.
func DriftProgress(state *models.LiveState, rng Random) {
	if len(state.Participants) == 0 {
		return
	}
	picks := rng.Intn(3) + 1
	for i := 0; i < picks; i++ {
		p := &state.Participants[rng.Intn(len(state.Participants))]
		p.Progress += rng.Intn(5) + 1
		if p.Progress > models.MaxProgress {
			p.Progress = models.MaxProgress
		}
		if rng.Float64() < 0.1 {
			p.Status = p.Status.Toggle()
		}
	}
}

// SimulationService applies the periodic steps to the shared store. Steps are dispatched as
// jobs on a single-worker queue, so at most one runs at a time.
type SimulationService struct {
	store    liveStateStore
	events   []string
	points   []string
	config   SimulationConfig
	notifier viewNotifier
	metrics  *MetricsService
	logger   *zap.Logger

	rngMu sync.Mutex
	rng   Random
}

// NewSimulationService constructs the engine. A nil rng seeds one from the clock.
func NewSimulationService(store liveStateStore, events, points []string, config SimulationConfig, rng Random, metrics *MetricsService, logger *zap.Logger) *SimulationService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SimulationService{
		store:    store,
		events:   events,
		points:   points,
		config:   config,
		notifier: nopNotifier{},
		metrics:  metrics,
		logger:   logger,
		rng:      rng,
	}
}

// SetNotifier wires the view layer.
func (s *SimulationService) SetNotifier(n viewNotifier) {
	if n == nil {
		n = nopNotifier{}
	}
	s.notifier = n
}

// Register binds every task to the mux.
func (s *SimulationService) Register(mux *jobs.Mux) {
	for _, task := range []string{TaskLiveCount, TaskActivity, TaskSummary, TaskProgress} {
		task := task
		mux.Handle(task, func(ctx context.Context, _ jobs.Job) error {
			s.Tick(ctx, task)
			return nil
		})
	}
}

// Schedule starts one ticker per task on the queue. Tickers stop with the queue.
func (s *SimulationService) Schedule(q jobScheduler) error {
	periods := []struct {
		task     string
		interval time.Duration
	}{
		{TaskLiveCount, s.config.CounterInterval},
		{TaskActivity, s.config.ActivityInterval},
		{TaskSummary, s.config.SummaryInterval},
		{TaskProgress, s.config.ProgressInterval},
	}
	for _, p := range periods {
		if err := q.Every(p.interval, p.task); err != nil {
			return err
		}
	}
	s.logger.Info("simulation scheduled",
		zap.Duration("live_count", s.config.CounterInterval),
		zap.Duration("activity", s.config.ActivityInterval),
		zap.Duration("summary", s.config.SummaryInterval),
		zap.Duration("progress", s.config.ProgressInterval))
	return nil
}

// Tick applies one task and returns the views it touched.
func (s *SimulationService) Tick(ctx context.Context, task string) []models.View {
	var touched []models.View
	var liveCount int

	s.rngMu.Lock()
	s.store.Update(func(state *models.LiveState) {
		switch task {
		case TaskLiveCount:
			DriftLiveCount(state, s.rng)
			touched = []models.View{models.ViewDashboard, models.ViewTracking}
		case TaskActivity:
			AddActivity(state, s.events, s.rng)
			touched = []models.View{models.ViewDashboard}
		case TaskSummary:
			if GrowSummary(state, s.points) {
				touched = []models.View{models.ViewDashboard}
			}
		case TaskProgress:
			DriftProgress(state, s.rng)
			touched = []models.View{models.ViewTracking}
		}
		liveCount = state.LiveCount
	})
	s.rngMu.Unlock()

	s.metrics.RecordSimulationTick(task)
	s.metrics.SetLiveCount(liveCount)
	if len(touched) > 0 {
		s.notifier.Touch(ctx, task, touched...)
	}
	return touched
}
