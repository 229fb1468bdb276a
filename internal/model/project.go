package model

import "time"

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "ACTIVE"
	ProjectOnHold    ProjectStatus = "ON_HOLD"
	ProjectCompleted ProjectStatus = "COMPLETED"
	ProjectCancelled ProjectStatus = "CANCELLED"
)

type Project struct {
	ID       int64         `json:"id"`
	Name     string        `json:"name"`
	Status   ProjectStatus `json:"status"`
	ClientID int64         `json:"client_id"`
	// Currency is the code the nominal budget and milestone amounts are
	// quoted in.
	Currency string `json:"currency"`
	// Budget is the nominal contract amount, in Currency.
	Budget *float64 `json:"budget,omitempty"`
	// FeePercent is the marketplace/platform deduction applied both to the
	// budget (payable amount) and to each released milestone.
	FeePercent *float64 `json:"fee_percent,omitempty"`
	// WorkingBudget overrides the amount allocated to execution, in Currency.
	WorkingBudget *float64 `json:"working_budget,omitempty"`
	// ExchangeRate is a per-project override: units of base currency per one
	// unit of Currency. When nil the static rate table applies.
	ExchangeRate *float64  `json:"exchange_rate,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProjectMember ties a worker to a project under a role label.
type ProjectMember struct {
	ProjectID int64  `json:"project_id"`
	WorkerID  int64  `json:"worker_id"`
	RoleLabel string `json:"role_label"`
}
