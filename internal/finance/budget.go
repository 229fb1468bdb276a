package finance

import "github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/model"

// BudgetStatus compares aggregated cost to a project's reference budget.
type BudgetStatus struct {
	// ReferenceBudget is in base currency; nil when the project has no
	// budget configuration at all.
	ReferenceBudget *float64 `json:"reference_budget,omitempty"`
	ConsumedPercent float64  `json:"consumed_percent"`
	Remaining       float64  `json:"remaining"`
	OverBudget      bool     `json:"over_budget"`
}

// PayableAmount applies the project's platform fee to its nominal budget:
// what a marketplace will actually disburse, in the project currency.
func PayableAmount(p *model.Project) FeeBreakdown {
	return ApplyFee(p.Budget, p.FeePercent)
}

// Consumption resolves the project's reference budget and measures totalCost
// against it. totalCost must be the unrounded base-currency total.
//
// Resolution order, first non-nil wins: working budget, fee-adjusted payable
// amount, raw nominal budget. All three convert at the project's resolved
// exchange rate.
func (c *Converter) Consumption(totalCost float64, p *model.Project) BudgetStatus {
	rate := c.ProjectRate(p)

	var ref *float64
	switch {
	case p.WorkingBudget != nil:
		v := *p.WorkingBudget * rate
		ref = &v
	case p.Budget != nil && p.FeePercent != nil:
		net := PayableAmount(p).Net
		v := *net * rate
		ref = &v
	case p.Budget != nil:
		v := *p.Budget * rate
		ref = &v
	}

	status := BudgetStatus{ReferenceBudget: ref}
	if ref == nil {
		return status
	}
	status.Remaining = *ref - totalCost
	status.OverBudget = totalCost > *ref
	if *ref > 0 {
		status.ConsumedPercent = totalCost / *ref * 100
	}
	return status
}
