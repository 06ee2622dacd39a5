package service

import (
	"context"
	"sync"
	"time"

	"github.com/medassist/assistant-gateway/pkg/model"
	"go.uber.org/zap"
)

// CountdownTracker watches Running timers and fires a completion
// callback when a timer's end time passes. One goroutine per Running
// timer; goroutines are cancelled when the timer leaves the Running
// state or when the tracker stops, so none outlive their timer.
type CountdownTracker struct {
	mu         sync.Mutex
	active     map[string]context.CancelFunc
	onComplete func(id string)
	logger     *zap.Logger
}

// NewCountdownTracker creates a tracker. onComplete is invoked from the
// watcher goroutine once per completed timer.
func NewCountdownTracker(onComplete func(id string), logger *zap.Logger) *CountdownTracker {
	return &CountdownTracker{
		active:     make(map[string]context.CancelFunc),
		onComplete: onComplete,
		logger:     logger,
	}
}

// Sync reconciles the tracked set against the given timers: watchers are
// started for newly Running timers and cancelled for timers that are no
// longer Running. Safe to call on every snapshot swap.
func (t *CountdownTracker) Sync(timers []model.Timer) {
	running := make(map[string]time.Time)
	for _, timer := range timers {
		if timer.Status == model.TimerStatusRunning && timer.EndTime != nil {
			running[timer.ID] = *timer.EndTime
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for id, cancel := range t.active {
		if _, ok := running[id]; !ok {
			cancel()
			delete(t.active, id)
		}
	}

	for id, end := range running {
		if _, ok := t.active[id]; ok {
			continue
		}
		ctx, cancel := context.WithCancel(context.Background())
		t.active[id] = cancel
		go t.watch(ctx, id, end)
	}
}

func (t *CountdownTracker) watch(ctx context.Context, id string, end time.Time) {
	d := time.Until(end)
	if d < 0 {
		d = 0
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return
	case <-timer.C:
	}

	t.mu.Lock()
	delete(t.active, id)
	t.mu.Unlock()

	t.logger.Info("timer countdown completed", zap.String("timer_id", id))
	t.onComplete(id)
}

// Stop cancels every watcher. The tracker must not be reused after Stop.
func (t *CountdownTracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for id, cancel := range t.active {
		cancel()
		delete(t.active, id)
	}
}
