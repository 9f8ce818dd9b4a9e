package entity

import (
	"time"
)

// PriceRecord is one per-tracker, per-cycle observation persisted for
// history. It is an audit trail only; the scheduler never reads it back.
type PriceRecord struct {
	ID           string     `bson:"_id,omitempty"`
	TrackerID    string     `bson:"trackerId"`
	OwnerUserID  string     `bson:"ownerUserId"`
	Origin       string     `bson:"origin"`
	Destination  string     `bson:"destination"`
	BestPrice    *float64   `bson:"bestPrice,omitempty"`
	BestDate     *time.Time `bson:"bestDate,omitempty"`
	SampledDates int        `bson:"sampledDates"`
	FailedDates  int        `bson:"failedDates"`
	Alerted      bool       `bson:"alerted"`
	CheckedAt    time.Time  `bson:"checkedAt"`
	CreatedAt    time.Time  `bson:"createdAt"`
}
