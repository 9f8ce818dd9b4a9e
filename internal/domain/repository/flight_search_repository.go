package repository

import (
	"context"
	"time"

	"flightwatch-service/internal/domain/entity"
)

// FlightQuery describes one price lookup: a route, a single departure date
// and the tracker's passenger/seat/stop constraints
type FlightQuery struct {
	Origin      string
	Destination string
	Date        time.Time
	Adults      int
	SeatClass   entity.SeatClass
	MaxStops    *int
}

// FlightSearchRepository defines the interface for external price lookups
type FlightSearchRepository interface {
	// Search performs one external price query and returns the priced
	// itineraries for the given date, or an error if the lookup failed
	Search(ctx context.Context, query FlightQuery) ([]entity.Itinerary, error)
}
