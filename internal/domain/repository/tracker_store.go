package repository

import (
	"errors"
	"time"

	"flightwatch-service/internal/domain/entity"
)

var (
	// ErrTrackerNotFound is returned when an id prefix matches none of the
	// owner's trackers
	ErrTrackerNotFound = errors.New("tracker not found")
	// ErrAmbiguousTrackerID is returned when an id prefix matches more than
	// one of the owner's trackers; the caller must supply a longer prefix
	ErrAmbiguousTrackerID = errors.New("tracker id prefix is ambiguous")
	// ErrDuplicateTrackerID is returned when an id is already registered
	ErrDuplicateTrackerID = errors.New("tracker id already exists")
)

// TrackerStore owns the set of active trackers. It is the only mutable
// shared state in the system: implementations must serialize mutation
// against concurrent command handlers and the poll cycle, and reads must
// never observe a half-inserted tracker.
type TrackerStore interface {
	// Add inserts a tracker under its identifier and indexes it by owner
	Add(tracker *entity.Tracker) error
	// Remove resolves idPrefix against the owner's trackers and removes the
	// single match. Returns ErrTrackerNotFound or ErrAmbiguousTrackerID.
	Remove(ownerID, idPrefix string) (*entity.Tracker, error)
	// RemoveByID removes a tracker by its full identifier. Used by the
	// remove-after-alert policy; removing an absent id is a no-op.
	RemoveByID(id string)
	// ListByOwner returns the owner's trackers in creation order
	ListByOwner(ownerID string) []*entity.Tracker
	// SnapshotAll returns a consistent copy of all trackers for one poll
	// cycle. Concurrent mutation is not reflected in the snapshot.
	SnapshotAll() []*entity.Tracker
	// UpdateObservation atomically writes the two mutable fields of one
	// tracker. A removed tracker is silently skipped.
	UpdateObservation(id string, checkedAt time.Time, price *float64)
	// Len reports the number of active trackers
	Len() int
}
