package models

import (
	"fmt"
	"time"
)

const (
	// HourKeyLayout is the canonical hour key form, e.g. "2025-12-28T18".
	// Keys are UTC and sort lexicographically in time order.
	HourKeyLayout = "2006-01-02T15"

	// DayKeyLayout is the canonical day key form, e.g. "2025-12-28" (UTC).
	DayKeyLayout = "2006-01-02"
)

// HourlyBucket holds the traffic counters for one calendar hour (UTC).
// Buckets are created on first request landing in the hour and mutated in
// place; buckets older than the retention window are purged lazily on the
// snapshot path.
type HourlyBucket struct {
	HourKey     string `json:"hour"`
	Label       string `json:"label"`
	PageViews   int64  `json:"pageViews"`
	APIRequests int64  `json:"apiRequests"`
}

// NewHourlyBucket creates a zero-valued bucket for the hour containing t.
func NewHourlyBucket(t time.Time) *HourlyBucket {
	utc := t.UTC()
	return &HourlyBucket{
		HourKey: HourKey(utc),
		Label:   fmt.Sprintf("%02d:00", utc.Hour()),
	}
}

// HourKey returns the canonical hour key for t.
func HourKey(t time.Time) string {
	return t.UTC().Format(HourKeyLayout)
}

// DayKey returns the canonical day key for t.
func DayKey(t time.Time) string {
	return t.UTC().Format(DayKeyLayout)
}
