package repository

import (
	"strings"
	"sync"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"
)

// InMemoryTrackerStore implements the TrackerStore interface with a
// process-local registry. Trackers are keyed by identifier and indexed by
// owner; both indexes are kept consistent under one lock, and every tracker
// handed out is a copy so callers can never mutate store state directly.
type InMemoryTrackerStore struct {
	mu       sync.RWMutex
	trackers map[string]*entity.Tracker
	byOwner  map[string][]string // tracker ids in creation order
}

// NewInMemoryTrackerStore creates a new in-memory tracker store
func NewInMemoryTrackerStore() *InMemoryTrackerStore {
	return &InMemoryTrackerStore{
		trackers: make(map[string]*entity.Tracker),
		byOwner:  make(map[string][]string),
	}
}

// Add inserts a tracker under its identifier and indexes it by owner
func (s *InMemoryTrackerStore) Add(tracker *entity.Tracker) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.trackers[tracker.ID]; exists {
		return repository.ErrDuplicateTrackerID
	}

	s.trackers[tracker.ID] = tracker.Clone()
	s.byOwner[tracker.OwnerUserID] = append(s.byOwner[tracker.OwnerUserID], tracker.ID)
	return nil
}

// Remove resolves idPrefix against the owner's trackers and removes the
// single match. Prefix resolution is scoped to the owner, so one user's
// prefix can never match another user's tracker.
func (s *InMemoryTrackerStore) Remove(ownerID, idPrefix string) (*entity.Tracker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched string
	for _, id := range s.byOwner[ownerID] {
		if !strings.HasPrefix(id, idPrefix) {
			continue
		}
		if matched != "" {
			return nil, repository.ErrAmbiguousTrackerID
		}
		matched = id
	}

	if matched == "" {
		return nil, repository.ErrTrackerNotFound
	}

	removed := s.trackers[matched].Clone()
	s.deleteLocked(matched, ownerID)
	return removed, nil
}

// RemoveByID removes a tracker by its full identifier; absent ids are a no-op
func (s *InMemoryTrackerStore) RemoveByID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tracker, exists := s.trackers[id]
	if !exists {
		return
	}
	s.deleteLocked(id, tracker.OwnerUserID)
}

// ListByOwner returns the owner's trackers in creation order
func (s *InMemoryTrackerStore) ListByOwner(ownerID string) []*entity.Tracker {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byOwner[ownerID]
	trackers := make([]*entity.Tracker, 0, len(ids))
	for _, id := range ids {
		trackers = append(trackers, s.trackers[id].Clone())
	}
	return trackers
}

// SnapshotAll returns a consistent copy of all trackers for one poll cycle
func (s *InMemoryTrackerStore) SnapshotAll() []*entity.Tracker {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trackers := make([]*entity.Tracker, 0, len(s.trackers))
	for _, ids := range s.byOwner {
		for _, id := range ids {
			trackers = append(trackers, s.trackers[id].Clone())
		}
	}
	return trackers
}

// UpdateObservation atomically writes the two mutable tracker fields.
// A tracker removed since the snapshot was taken is silently skipped.
func (s *InMemoryTrackerStore) UpdateObservation(id string, checkedAt time.Time, price *float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tracker, exists := s.trackers[id]
	if !exists {
		return
	}

	tracker.LastCheckedAt = checkedAt
	if price != nil {
		v := *price
		tracker.LastObservedPrice = &v
	}
}

// Len reports the number of active trackers
func (s *InMemoryTrackerStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.trackers)
}

func (s *InMemoryTrackerStore) deleteLocked(id, ownerID string) {
	delete(s.trackers, id)

	ids := s.byOwner[ownerID]
	for i, ownedID := range ids {
		if ownedID == id {
			s.byOwner[ownerID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(s.byOwner[ownerID]) == 0 {
		delete(s.byOwner, ownerID)
	}
}
