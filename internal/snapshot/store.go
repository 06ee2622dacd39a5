// Package snapshot holds the gateway's read-only cached copies of the
// backend's five collections. A snapshot is immutable once published:
// readers keep whatever snapshot they obtained until they ask again, and
// refreshes build the next snapshot completely before a single atomic
// swap, so no reader ever observes a partially refreshed state.
package snapshot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/medassist/assistant-gateway/pkg/model"
	"go.uber.org/zap"
)

// Fetcher is the subset of the backend client the store needs.
type Fetcher interface {
	ListMedications(ctx context.Context) ([]model.Medication, error)
	ListAppointments(ctx context.Context) ([]model.Appointment, error)
	ListTimers(ctx context.Context) ([]model.Timer, error)
	GetProfile(ctx context.Context) (*model.UserProfile, error)
	ListInsights(ctx context.Context) ([]model.HealthInsight, error)
}

// Snapshot is one immutable view of all five cached collections.
type Snapshot struct {
	Medications  []model.Medication
	Appointments []model.Appointment
	Timers       []model.Timer
	Profile      *model.UserProfile
	Insights     []model.HealthInsight
	FetchedAt    time.Time
}

// Store owns the current snapshot. Writes go through Refresh and the
// targeted Refresh* methods only (single-writer); View is safe from any
// goroutine because published snapshots are never mutated.
type Store struct {
	mu      sync.RWMutex
	current *Snapshot

	// writeMu serializes refreshes so a targeted read-modify-publish can
	// never lose the update of a concurrent full refresh.
	writeMu sync.Mutex

	fetcher Fetcher
	logger  *zap.Logger
	onSwap  func(*Snapshot)
}

// New creates a Store with an empty initial snapshot.
func New(fetcher Fetcher, logger *zap.Logger) *Store {
	return &Store{
		current: &Snapshot{},
		fetcher: fetcher,
		logger:  logger,
	}
}

// OnSwap registers a callback invoked with each newly published snapshot.
// Must be called before the store is shared between goroutines.
func (s *Store) OnSwap(fn func(*Snapshot)) {
	s.onSwap = fn
}

// View returns the current snapshot. The caller must treat it as
// read-only.
func (s *Store) View() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Store) publish(next *Snapshot) {
	s.mu.Lock()
	s.current = next
	s.mu.Unlock()

	if s.onSwap != nil {
		s.onSwap(next)
	}
}

// Refresh fetches all five collections and swaps in a complete new
// snapshot. The old snapshot stays readable until the fetch has fully
// succeeded; a failure on any collection leaves the store untouched.
func (s *Store) Refresh(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	medications, err := s.fetcher.ListMedications(ctx)
	if err != nil {
		return fmt.Errorf("refresh medications: %w", err)
	}
	appointments, err := s.fetcher.ListAppointments(ctx)
	if err != nil {
		return fmt.Errorf("refresh appointments: %w", err)
	}
	timers, err := s.fetcher.ListTimers(ctx)
	if err != nil {
		return fmt.Errorf("refresh timers: %w", err)
	}
	profile, err := s.fetcher.GetProfile(ctx)
	if err != nil {
		return fmt.Errorf("refresh profile: %w", err)
	}
	insights, err := s.fetcher.ListInsights(ctx)
	if err != nil {
		return fmt.Errorf("refresh insights: %w", err)
	}

	s.publish(&Snapshot{
		Medications:  medications,
		Appointments: appointments,
		Timers:       timers,
		Profile:      profile,
		Insights:     insights,
		FetchedAt:    time.Now(),
	})

	s.logger.Info("snapshot refreshed",
		zap.Int("medications", len(medications)),
		zap.Int("appointments", len(appointments)),
		zap.Int("timers", len(timers)),
		zap.Int("insights", len(insights)),
	)

	return nil
}

// The targeted refreshes below re-fetch a single collection and publish a
// new snapshot carrying it; all other collections are carried over from
// the current snapshot unchanged. The swap is still all-or-nothing.

func (s *Store) RefreshMedications(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	medications, err := s.fetcher.ListMedications(ctx)
	if err != nil {
		return fmt.Errorf("refresh medications: %w", err)
	}
	next := *s.View()
	next.Medications = medications
	next.FetchedAt = time.Now()
	s.publish(&next)
	return nil
}

func (s *Store) RefreshAppointments(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	appointments, err := s.fetcher.ListAppointments(ctx)
	if err != nil {
		return fmt.Errorf("refresh appointments: %w", err)
	}
	next := *s.View()
	next.Appointments = appointments
	next.FetchedAt = time.Now()
	s.publish(&next)
	return nil
}

func (s *Store) RefreshTimers(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	timers, err := s.fetcher.ListTimers(ctx)
	if err != nil {
		return fmt.Errorf("refresh timers: %w", err)
	}
	next := *s.View()
	next.Timers = timers
	next.FetchedAt = time.Now()
	s.publish(&next)
	return nil
}

func (s *Store) RefreshInsights(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	insights, err := s.fetcher.ListInsights(ctx)
	if err != nil {
		return fmt.Errorf("refresh insights: %w", err)
	}
	next := *s.View()
	next.Insights = insights
	next.FetchedAt = time.Now()
	s.publish(&next)
	return nil
}

// RunPeriodic refreshes the full snapshot on a fixed interval until the
// context is cancelled. It keeps the cache warm when the notification
// channel is down; individual failures are logged and the loop continues.
func (s *Store) RunPeriodic(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				s.logger.Warn("periodic snapshot refresh failed", zap.Error(err))
			}
		}
	}
}
