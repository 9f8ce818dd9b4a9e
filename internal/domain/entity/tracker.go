package entity

import (
	"fmt"
	"time"
)

// SeatClass is the cabin class used for price lookups
type SeatClass string

const (
	SeatEconomy        SeatClass = "economy"
	SeatPremiumEconomy SeatClass = "premium-economy"
	SeatBusiness       SeatClass = "business"
	SeatFirst          SeatClass = "first"
)

// ParseSeatClass validates a seat class string
func ParseSeatClass(s string) (SeatClass, error) {
	switch SeatClass(s) {
	case SeatEconomy, SeatPremiumEconomy, SeatBusiness, SeatFirst:
		return SeatClass(s), nil
	}
	return "", fmt.Errorf("invalid seat class %q, must be one of: economy, premium-economy, business, first", s)
}

// Tracker represents a price watch on one route and date window.
// Identity, ownership, route, window and constraints are immutable after
// creation; only LastCheckedAt and LastObservedPrice change, and only
// through TrackerStore.UpdateObservation.
type Tracker struct {
	ID              string
	OwnerUserID     string
	NotifyChannelID string
	Origin          string
	Destination     string
	StartDate       time.Time
	EndDate         time.Time
	MaxPrice        float64
	Adults          int
	SeatClass       SeatClass
	MaxStops        *int
	CreatedAt       time.Time

	// LastCheckedAt advances every cycle regardless of lookup outcome.
	LastCheckedAt time.Time
	// LastObservedPrice is the minimum price found across the last cycle's
	// sampled dates, or nil if no cycle has produced a usable price yet.
	LastObservedPrice *float64
}

// ShortID returns the display prefix of the tracker identifier
func (t *Tracker) ShortID() string {
	if len(t.ID) > 8 {
		return t.ID[:8]
	}
	return t.ID
}

// Clone returns a copy safe to hand out of the store
func (t *Tracker) Clone() *Tracker {
	c := *t
	if t.MaxStops != nil {
		v := *t.MaxStops
		c.MaxStops = &v
	}
	if t.LastObservedPrice != nil {
		v := *t.LastObservedPrice
		c.LastObservedPrice = &v
	}
	return &c
}

// CycleObservation is the per-tracker result of one poll cycle. It exists
// only long enough to update the tracker and decide on a notification.
type CycleObservation struct {
	BestPrice     *float64
	BestDate      time.Time
	BestItinerary *Itinerary
	SampledDates  int
	FailedDates   int
}
