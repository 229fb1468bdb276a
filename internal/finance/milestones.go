package finance

import (
	"fmt"
	"strings"

	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/model"
)

// MilestoneSummary classifies milestones by payment status. Cancelled
// milestones are excluded from both lists and from every total.
type MilestoneSummary struct {
	Released       []model.Milestone `json:"released"`
	Pending        []model.Milestone `json:"pending"`
	ReleasedAmount float64           `json:"released_amount"`
	PendingAmount  float64           `json:"pending_amount"`
	TotalAmount    float64           `json:"total_amount"`
}

// ClassifyMilestones splits milestones into released and pending and sums
// their amounts. Anything that is neither released nor cancelled counts as
// pending. When normalize is true the amounts are converted to base
// currency at each milestone's effective currency.
func (c *Converter) ClassifyMilestones(ms []model.Milestone, projectCurrency string, normalize bool) MilestoneSummary {
	var s MilestoneSummary
	for _, m := range ms {
		if m.PaymentStatus == model.PaymentCancelled {
			continue
		}
		amount := m.Amount
		if normalize {
			amount = c.ToBaseValue(amount, MilestoneCurrency(m, projectCurrency))
		}
		if m.PaymentStatus == model.PaymentReleased {
			s.Released = append(s.Released, m)
			s.ReleasedAmount += amount
		} else {
			s.Pending = append(s.Pending, m)
			s.PendingAmount += amount
		}
		s.TotalAmount += amount
	}
	return s
}

// statusVocabulary translates the external status vocabulary onto the
// canonical workflow/payment pair. The UI speaks in payment terms
// ("released", "pending") while storage speaks in workflow terms; this table
// is the only place the two meet, and callers must not bypass it.
var statusVocabulary = map[string]struct {
	workflow model.WorkflowStatus
	payment  model.PaymentStatus
}{
	"RELEASED":    {model.WorkflowCompleted, model.PaymentReleased},
	"PENDING":     {model.WorkflowNotStarted, model.PaymentPending},
	"NOT_STARTED": {model.WorkflowNotStarted, model.PaymentPending},
	"IN_PROGRESS": {model.WorkflowInProgress, model.PaymentPending},
	"COMPLETED":   {model.WorkflowCompleted, model.PaymentReleased},
	"CANCELLED":   {model.WorkflowCancelled, model.PaymentCancelled},
}

// TranslateStatus maps a caller-supplied status string (case-insensitive)
// onto the canonical pair. Unknown input is rejected rather than guessed at.
func TranslateStatus(input string) (model.WorkflowStatus, model.PaymentStatus, error) {
	entry, ok := statusVocabulary[strings.ToUpper(strings.TrimSpace(input))]
	if !ok {
		return "", "", fmt.Errorf("unknown milestone status %q", input)
	}
	return entry.workflow, entry.payment, nil
}
