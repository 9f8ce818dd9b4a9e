package templates

import (
	"fmt"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/pkg/utils"
)

// ALERT_TEMPLATE is the price alert message body.
// Placeholders: origin, destination, date, price, threshold, tracker id.
const ALERT_TEMPLATE = `Price Alert - flight price dropped below your threshold!

Route: %s -> %s
Date: %s
Price: $%.2f
Your Threshold: $%.2f

Tracker ID: %s`

// FLIGHT_DETAIL_TEMPLATE is appended when the best itinerary is known.
// Placeholders: name, departure, arrival, duration, stops.
const FLIGHT_DETAIL_TEMPLATE = `

Flight Details:
%s
Depart: %s -> Arrive: %s
Duration: %s | %s`

// BuildAlertMessage renders the delivery text for one price alert.
// originLabel and destLabel are display names for the route endpoints
// (airport directory names when available, bare codes otherwise).
func BuildAlertMessage(alert *entity.PriceAlert, originLabel, destLabel string) string {
	msg := fmt.Sprintf(ALERT_TEMPLATE,
		originLabel,
		destLabel,
		alert.BestDate.Format(utils.DateLayout),
		alert.BestPrice,
		alert.Tracker.MaxPrice,
		alert.Tracker.ShortID(),
	)

	if alert.BestItinerary != nil {
		msg += fmt.Sprintf(FLIGHT_DETAIL_TEMPLATE,
			alert.BestItinerary.Name,
			alert.BestItinerary.Departure,
			alert.BestItinerary.Arrival,
			alert.BestItinerary.Duration,
			utils.FormatStops(alert.BestItinerary.Stops),
		)
	}

	return msg
}

// BuildTrackerSummary renders the confirmation text for a created tracker
func BuildTrackerSummary(t *entity.Tracker) string {
	msg := fmt.Sprintf(
		"Tracking flights from %s to %s\nDates: %s to %s\nAlert when price <= $%.2f\nPassengers: %d adult(s) | Seat: %s",
		t.Origin,
		t.Destination,
		t.StartDate.Format(utils.DateLayout),
		t.EndDate.Format(utils.DateLayout),
		t.MaxPrice,
		t.Adults,
		t.SeatClass,
	)
	if t.MaxStops != nil {
		msg += fmt.Sprintf(" | Max stops: %d", *t.MaxStops)
	}
	msg += fmt.Sprintf("\nTracker ID: %s", t.ShortID())
	return msg
}
