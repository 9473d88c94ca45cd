package service

import (
	"context"
	"sync"
	"time"

	"github.com/noah-isme/workshop-hub-api/internal/models"
	"github.com/noah-isme/workshop-hub-api/pkg/jobs"
)

// scriptedRandom replays fixed draws; Intn results are reduced modulo n.
type scriptedRandom struct {
	ints   []int
	floats []float64
}

func (r *scriptedRandom) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *scriptedRandom) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.99
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

type touchCall struct {
	reason string
	views  []models.View
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []touchCall
}

func (n *recordingNotifier) Touch(_ context.Context, reason string, views ...models.View) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, touchCall{reason: reason, views: views})
}

type delayedJob struct {
	delay time.Duration
	job   jobs.Job
}

type fakeQueue struct {
	mu      sync.Mutex
	delayed []delayedJob
	every   map[string]time.Duration
	err     error
}

func (q *fakeQueue) EnqueueAfter(delay time.Duration, job jobs.Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.delayed = append(q.delayed, delayedJob{delay: delay, job: job})
	return nil
}

func (q *fakeQueue) Every(interval time.Duration, jobType string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.every == nil {
		q.every = make(map[string]time.Duration)
	}
	q.every[jobType] = interval
	return nil
}

type staticView models.View

func (v staticView) Current() models.View { return models.View(v) }
