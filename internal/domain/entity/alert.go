package entity

import "time"

// PriceAlert is the notification decision produced when a cycle's best
// price falls at or below the tracker's threshold. Exactly one is emitted
// per tracker per qualifying cycle.
type PriceAlert struct {
	Tracker       *Tracker
	BestPrice     float64
	BestDate      time.Time
	BestItinerary *Itinerary
}

// AlertMessage is the payload handed to the delivery channel
type AlertMessage struct {
	ChannelID   string `json:"channelId"`
	UserMention string `json:"userMention"`
	Text        string `json:"text"`
}
