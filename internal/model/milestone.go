package model

import "time"

// WorkflowStatus tracks a milestone's delivery progress.
type WorkflowStatus string

const (
	WorkflowNotStarted WorkflowStatus = "NOT_STARTED"
	WorkflowInProgress WorkflowStatus = "IN_PROGRESS"
	WorkflowCompleted  WorkflowStatus = "COMPLETED"
	WorkflowCancelled  WorkflowStatus = "CANCELLED"
)

// PaymentStatus is the revenue-recognition state of a milestone. It is
// independent of WorkflowStatus: a milestone can be delivered but unpaid.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentReleased  PaymentStatus = "RELEASED"
	PaymentCancelled PaymentStatus = "CANCELLED"
)

type Milestone struct {
	ID          int64  `json:"id"`
	ProjectID   int64  `json:"project_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Amount      float64 `json:"amount"`
	// Currency overrides the project currency for this milestone's amount.
	Currency       *string        `json:"currency,omitempty"`
	WorkflowStatus WorkflowStatus `json:"workflow_status"`
	PaymentStatus  PaymentStatus  `json:"payment_status"`
	DueDate        *time.Time     `json:"due_date,omitempty"`
	// ReleasedAt is stamped exactly once, when the payment status first
	// becomes RELEASED.
	ReleasedAt *time.Time `json:"released_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
