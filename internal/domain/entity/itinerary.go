package entity

// Itinerary represents one priced flight option returned by the
// flight-search service. Price carries the raw price text as returned by
// the provider ("$1,234"); parsing happens at aggregation time.
type Itinerary struct {
	Name             string `json:"name"`
	Price            string `json:"price"`
	Departure        string `json:"departure"`
	Arrival          string `json:"arrival"`
	Duration         string `json:"duration"`
	Stops            int    `json:"stops"`
	IsBest           bool   `json:"isBest"`
	Delay            string `json:"delay,omitempty"`
	ArrivalTimeAhead string `json:"arrivalTimeAhead,omitempty"`
}
