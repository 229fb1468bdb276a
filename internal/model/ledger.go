package model

import "time"

// LedgerTransaction is written once per milestone release. The engine only
// ever writes these; reading the ledger belongs to the accounting side.
type LedgerTransaction struct {
	ID             int64     `json:"id"`
	MilestoneID    int64     `json:"milestone_id"`
	MilestoneTitle string    `json:"milestone_title"`
	Amount         float64   `json:"amount"`
	Currency       string    `json:"currency"`
	ProjectID      int64     `json:"project_id"`
	ProjectName    string    `json:"project_name"`
	ClientName     string    `json:"client_name"`
	// FeePercent is the project's platform fee in effect at release time.
	FeePercent *float64  `json:"fee_percent,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
