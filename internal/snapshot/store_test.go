package snapshot

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/medassist/assistant-gateway/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) ListMedications(ctx context.Context) ([]model.Medication, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Medication), args.Error(1)
}

func (m *MockFetcher) ListAppointments(ctx context.Context) ([]model.Appointment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Appointment), args.Error(1)
}

func (m *MockFetcher) ListTimers(ctx context.Context) ([]model.Timer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Timer), args.Error(1)
}

func (m *MockFetcher) GetProfile(ctx context.Context) (*model.UserProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserProfile), args.Error(1)
}

func (m *MockFetcher) ListInsights(ctx context.Context) ([]model.HealthInsight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.HealthInsight), args.Error(1)
}

func happyFetcher() *MockFetcher {
	fetcher := new(MockFetcher)
	fetcher.On("ListMedications", mock.Anything).Return([]model.Medication{{ID: "m1", Name: "Aspirin"}}, nil)
	fetcher.On("ListAppointments", mock.Anything).Return([]model.Appointment{{ID: "a1", DoctorName: "Smith"}}, nil)
	fetcher.On("ListTimers", mock.Anything).Return([]model.Timer{{ID: "t1", Name: "Tea"}}, nil)
	fetcher.On("GetProfile", mock.Anything).Return(&model.UserProfile{Height: 180}, nil)
	fetcher.On("ListInsights", mock.Anything).Return([]model.HealthInsight{{ID: "i1"}}, nil)
	return fetcher
}

func TestRefresh_PopulatesAllCollections(t *testing.T) {
	store := New(happyFetcher(), zap.NewNop())

	err := store.Refresh(context.Background())
	assert.NoError(t, err)

	snap := store.View()
	assert.Len(t, snap.Medications, 1)
	assert.Len(t, snap.Appointments, 1)
	assert.Len(t, snap.Timers, 1)
	assert.Len(t, snap.Insights, 1)
	assert.NotNil(t, snap.Profile)
	assert.False(t, snap.FetchedAt.IsZero())
}

func TestRefresh_FailureLeavesStoreUntouched(t *testing.T) {
	fetcher := happyFetcher()
	store := New(fetcher, zap.NewNop())
	assert.NoError(t, store.Refresh(context.Background()))
	before := store.View()

	failing := new(MockFetcher)
	failing.On("ListMedications", mock.Anything).Return([]model.Medication{}, nil)
	failing.On("ListAppointments", mock.Anything).Return(nil, fmt.Errorf("backend down"))
	store.fetcher = failing

	err := store.Refresh(context.Background())
	assert.Error(t, err)
	assert.Same(t, before, store.View(), "failed refresh must not publish a new snapshot")
}

func TestRefreshTimers_ReplacesOnlyTimers(t *testing.T) {
	fetcher := happyFetcher()
	store := New(fetcher, zap.NewNop())
	assert.NoError(t, store.Refresh(context.Background()))
	before := store.View()

	updated := new(MockFetcher)
	updated.On("ListTimers", mock.Anything).Return([]model.Timer{
		{ID: "t1", Name: "Tea"},
		{ID: "t2", Name: "Soup"},
	}, nil)
	store.fetcher = updated

	assert.NoError(t, store.RefreshTimers(context.Background()))

	snap := store.View()
	assert.Len(t, snap.Timers, 2)
	// Other collections carry over from the previous snapshot.
	assert.Equal(t, before.Medications, snap.Medications)
	assert.Equal(t, before.Appointments, snap.Appointments)
	assert.Equal(t, before.Profile, snap.Profile)
	assert.Equal(t, before.Insights, snap.Insights)
}

func TestOnSwap_FiresPerPublish(t *testing.T) {
	store := New(happyFetcher(), zap.NewNop())

	var swaps int
	store.OnSwap(func(s *Snapshot) {
		swaps++
		assert.NotNil(t, s)
	})

	assert.NoError(t, store.Refresh(context.Background()))
	assert.NoError(t, store.RefreshTimers(context.Background()))
	assert.Equal(t, 2, swaps)
}

// Readers racing a refresh always observe a complete snapshot: either
// the old one or the new one, never a mix.
func TestView_ConcurrentReadersSeeConsistentSnapshots(t *testing.T) {
	store := New(happyFetcher(), zap.NewNop())
	assert.NoError(t, store.Refresh(context.Background()))

	done := make(chan struct{})
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				snap := store.View()
				// A published snapshot is always fully populated.
				if len(snap.Medications) == 0 || snap.Profile == nil {
					t.Error("observed partially refreshed snapshot")
					return
				}
			}
		}()
	}

	deadline := time.After(50 * time.Millisecond)
loop:
	for {
		select {
		case <-deadline:
			break loop
		default:
			assert.NoError(t, store.Refresh(context.Background()))
		}
	}

	close(done)
	wg.Wait()
}
