package utils

import (
	"time"
)

// DateLayout is the wire format for calendar dates
const DateLayout = "2006-01-02"

// DatesInRange returns every calendar date from start through end inclusive.
// Returns nil when end is before start.
func DatesInRange(start, end time.Time) []time.Time {
	start = truncateToDay(start)
	end = truncateToDay(end)
	if end.Before(start) {
		return nil
	}

	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// SampleDates selects an evenly spaced subset of the inclusive date range,
// at most maxSamples entries. The start date is always included and the
// result is deterministic for a given range.
func SampleDates(start, end time.Time, maxSamples int) []time.Time {
	if maxSamples <= 0 {
		return nil
	}

	all := DatesInRange(start, end)
	if len(all) == 0 {
		return nil
	}

	stride := len(all) / maxSamples
	if stride < 1 {
		stride = 1
	}

	sampled := make([]time.Time, 0, maxSamples)
	for i := 0; i < len(all) && len(sampled) < maxSamples; i += stride {
		sampled = append(sampled, all[i])
	}
	return sampled
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
