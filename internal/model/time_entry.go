package model

import "time"

// TimeEntry is an immutable record of logged work. DurationSeconds is the
// authoritative duration for cost math; it is not re-derived from the
// start/end pair.
type TimeEntry struct {
	ID              int64     `json:"id"`
	TaskID          int64     `json:"task_id"`
	WorkerID        int64     `json:"worker_id"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationSeconds int64     `json:"duration_seconds"`
	Billable        bool      `json:"billable"`
}

// Hours converts the authoritative duration to decimal hours.
func (e TimeEntry) Hours() float64 {
	return float64(e.DurationSeconds) / 3600
}
