package mq

import "time"

// Routing keys published by the finance service.
const (
	RoutingKeyMilestoneReleased = "milestone.released"
)

// MilestoneReleasedPayload announces that a milestone's payment was
// released and a ledger transaction was attempted.
type MilestoneReleasedPayload struct {
	MilestoneID    int64     `json:"milestone_id"`
	ProjectID      int64     `json:"project_id"`
	ProjectName    string    `json:"project_name"`
	Title          string    `json:"title"`
	Amount         float64   `json:"amount"`
	Currency       string    `json:"currency"`
	FeePercent     *float64  `json:"fee_percent,omitempty"`
	LedgerRecorded bool      `json:"ledger_recorded"`
	ReleasedAt     time.Time `json:"released_at"`
}
