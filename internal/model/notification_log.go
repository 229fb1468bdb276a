package model

import "time"

// NotificationLog records a consumed milestone.released event on the worker
// side.
type NotificationLog struct {
	ID          int64     `json:"id"`
	MilestoneID int64     `json:"milestone_id"`
	ProjectID   int64     `json:"project_id"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
}
