package repository

import (
	"sync"
	"testing"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTracker(id, owner string) *entity.Tracker {
	return &entity.Tracker{
		ID:              id,
		OwnerUserID:     owner,
		NotifyChannelID: "chan-1",
		Origin:          "JFK",
		Destination:     "MIA",
		StartDate:       time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC),
		MaxPrice:        500,
		Adults:          1,
		SeatClass:       entity.SeatEconomy,
		CreatedAt:       time.Now(),
		LastCheckedAt:   time.Now(),
	}
}

func TestAdd_DuplicateID(t *testing.T) {
	store := NewInMemoryTrackerStore()
	require.NoError(t, store.Add(newTracker("abc-123", "user-1")))

	err := store.Add(newTracker("abc-123", "user-2"))
	assert.ErrorIs(t, err, repository.ErrDuplicateTrackerID)
	assert.Equal(t, 1, store.Len())
}

func TestListByOwner_CreationOrder(t *testing.T) {
	store := NewInMemoryTrackerStore()
	require.NoError(t, store.Add(newTracker("first-tracker", "user-1")))
	require.NoError(t, store.Add(newTracker("second-tracker", "user-1")))
	require.NoError(t, store.Add(newTracker("other-tracker", "user-2")))

	trackers := store.ListByOwner("user-1")
	require.Len(t, trackers, 2)
	assert.Equal(t, "first-tracker", trackers[0].ID)
	assert.Equal(t, "second-tracker", trackers[1].ID)

	assert.Empty(t, store.ListByOwner("user-3"))
}

func TestRemove_ByPrefix(t *testing.T) {
	store := NewInMemoryTrackerStore()
	require.NoError(t, store.Add(newTracker("abc-123", "user-1")))
	require.NoError(t, store.Add(newTracker("abd-456", "user-1")))

	removed, err := store.Remove("user-1", "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc-123", removed.ID)

	trackers := store.ListByOwner("user-1")
	require.Len(t, trackers, 1)
	assert.Equal(t, "abd-456", trackers[0].ID)
}

func TestRemove_NotFound(t *testing.T) {
	store := NewInMemoryTrackerStore()
	require.NoError(t, store.Add(newTracker("abc-123", "user-1")))

	_, err := store.Remove("user-1", "zzz")
	assert.ErrorIs(t, err, repository.ErrTrackerNotFound)
	assert.Equal(t, 1, store.Len())
}

func TestRemove_Ambiguous(t *testing.T) {
	store := NewInMemoryTrackerStore()
	require.NoError(t, store.Add(newTracker("abc-123", "user-1")))
	require.NoError(t, store.Add(newTracker("abc-456", "user-1")))

	_, err := store.Remove("user-1", "abc")
	assert.ErrorIs(t, err, repository.ErrAmbiguousTrackerID)
	assert.Equal(t, 2, store.Len())

	// A longer prefix disambiguates
	removed, err := store.Remove("user-1", "abc-1")
	require.NoError(t, err)
	assert.Equal(t, "abc-123", removed.ID)
}

func TestRemove_ScopedToOwner(t *testing.T) {
	store := NewInMemoryTrackerStore()
	require.NoError(t, store.Add(newTracker("abc-123", "user-1")))

	// Another user's prefix never matches a foreign tracker
	_, err := store.Remove("user-2", "abc")
	assert.ErrorIs(t, err, repository.ErrTrackerNotFound)
	assert.Equal(t, 1, store.Len())
}

func TestRemoveByID(t *testing.T) {
	store := NewInMemoryTrackerStore()
	require.NoError(t, store.Add(newTracker("abc-123", "user-1")))

	store.RemoveByID("abc-123")
	assert.Equal(t, 0, store.Len())
	assert.Empty(t, store.ListByOwner("user-1"))

	// Removing an absent id is a no-op
	store.RemoveByID("abc-123")
}

func TestUpdateObservation(t *testing.T) {
	store := NewInMemoryTrackerStore()
	tracker := newTracker("abc-123", "user-1")
	require.NoError(t, store.Add(tracker))

	checkedAt := time.Now().Add(time.Hour)
	price := 480.0
	store.UpdateObservation("abc-123", checkedAt, &price)

	got := store.ListByOwner("user-1")[0]
	assert.Equal(t, checkedAt, got.LastCheckedAt)
	require.NotNil(t, got.LastObservedPrice)
	assert.Equal(t, 480.0, *got.LastObservedPrice)

	// A nil price advances the check time but keeps the last observation
	later := checkedAt.Add(time.Hour)
	store.UpdateObservation("abc-123", later, nil)

	got = store.ListByOwner("user-1")[0]
	assert.Equal(t, later, got.LastCheckedAt)
	require.NotNil(t, got.LastObservedPrice)
	assert.Equal(t, 480.0, *got.LastObservedPrice)
}

func TestUpdateObservation_RemovedTracker(t *testing.T) {
	store := NewInMemoryTrackerStore()
	require.NoError(t, store.Add(newTracker("abc-123", "user-1")))
	store.RemoveByID("abc-123")

	// Concurrent removal makes the update a silent no-op
	price := 480.0
	store.UpdateObservation("abc-123", time.Now(), &price)
	assert.Equal(t, 0, store.Len())
}

func TestSnapshotAll_ReturnsCopies(t *testing.T) {
	store := NewInMemoryTrackerStore()
	require.NoError(t, store.Add(newTracker("abc-123", "user-1")))

	snapshot := store.SnapshotAll()
	require.Len(t, snapshot, 1)

	// Mutating the snapshot must not leak into the store
	snapshot[0].MaxPrice = 1
	price := 9.0
	snapshot[0].LastObservedPrice = &price

	got := store.ListByOwner("user-1")[0]
	assert.Equal(t, 500.0, got.MaxPrice)
	assert.Nil(t, got.LastObservedPrice)
}

func TestConcurrentAccess(t *testing.T) {
	store := NewInMemoryTrackerStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := string(rune('a'+n)) + "-tracker"
			store.Add(newTracker(id, "user-1"))
			store.SnapshotAll()
			price := float64(n)
			store.UpdateObservation(id, time.Now(), &price)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, store.Len())
	assert.Len(t, store.ListByOwner("user-1"), 20)
}
