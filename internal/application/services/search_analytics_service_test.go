package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PIGAsHIT/audiophile-proof/internal/domain/entities"
)

type failingEventRepo struct {
	mu    sync.Mutex
	calls int
}

func (f *failingEventRepo) LogEvent(ctx context.Context, event *entities.SearchEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return errors.New("mongo down")
}

func (f *failingEventRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*entities.SearchEvent, error) {
	return nil, errors.New("mongo down")
}

func (f *failingEventRepo) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestTrackSearchSetsTimestamp(t *testing.T) {
	repo := &fakeEventRepo{}
	svc := NewSearchAnalyticsService(repo)

	svc.TrackSearch(&entities.SearchEvent{Event: entities.EventFullSearch})

	events := waitForEvents(t, repo, 1)
	assert.False(t, events[0].Timestamp.IsZero())
}

func TestTrackSearchSwallowsWriteFailure(t *testing.T) {
	repo := &failingEventRepo{}
	svc := NewSearchAnalyticsService(repo)

	// Must not panic; the write happens in the background.
	svc.TrackSearch(&entities.SearchEvent{Event: entities.EventFullSearch})

	require.Eventually(t, func() bool {
		return repo.callCount() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestTrackSearchWithNilRepoIsNoOp(t *testing.T) {
	svc := NewSearchAnalyticsService(nil)
	svc.TrackSearch(&entities.SearchEvent{Event: entities.EventFullSearch})
}

func TestHistoryFormatsEvents(t *testing.T) {
	repo := &fakeEventRepo{}
	userID := "u1"
	repo.events = []*entities.SearchEvent{
		{
			Event:     entities.EventFullSearch,
			Timestamp: time.Date(2026, 8, 30, 14, 5, 0, 0, time.UTC),
			UserID:    &userID,
			Data: map[string]interface{}{
				"brand": "Sony", "model": "WH-1000XM5", "result": "Hotel California",
			},
		},
	}
	svc := NewSearchAnalyticsService(repo)

	items, err := svc.History(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Sony", items[0].Brand)
	assert.Equal(t, "WH-1000XM5", items[0].Model)
	assert.Equal(t, "Hotel California", items[0].ResultSong)
	assert.Equal(t, "2026-08-30 14:05", items[0].Timestamp)
}

func TestHistoryToleratesPartialEventData(t *testing.T) {
	repo := &fakeEventRepo{}
	repo.events = []*entities.SearchEvent{
		{Event: entities.EventFullSearch, Timestamp: time.Now(), Data: map[string]interface{}{}},
	}
	svc := NewSearchAnalyticsService(repo)

	items, err := svc.History(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Empty(t, items[0].Brand)
}
