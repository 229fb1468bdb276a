package finance

import (
	"testing"

	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/model"
)

func TestConverter_Consumption(t *testing.T) {
	conv := NewConverter(defaultRates(), 280)

	tests := []struct {
		name      string
		totalCost float64
		project   model.Project
		wantRef   *float64
		wantPct   float64
		wantRem   float64
		wantOver  bool
	}{
		{
			name:      "working budget wins over fee-adjusted budget",
			totalCost: 140000,
			project: model.Project{
				Currency:      "USD",
				Budget:        f(5000),
				FeePercent:    f(10),
				WorkingBudget: f(1000),
			},
			wantRef: f(280000),
			wantPct: 50,
			wantRem: 140000,
		},
		{
			name:      "fee-adjusted budget when no working budget",
			totalCost: 126000,
			project: model.Project{
				Currency:   "USD",
				Budget:     f(1000),
				FeePercent: f(10),
			},
			wantRef: f(252000), // 900 USD net at 280
			wantPct: 50,
			wantRem: 126000,
		},
		{
			name:      "raw budget when no fee percent",
			totalCost: 300000,
			project: model.Project{
				Currency: "USD",
				Budget:   f(1000),
			},
			wantRef:  f(280000),
			wantPct:  107.14285714285714,
			wantRem:  -20000,
			wantOver: true,
		},
		{
			name:      "override rate applies to working budget",
			totalCost: 0,
			project: model.Project{
				Currency:      "USD",
				WorkingBudget: f(1000),
				ExchangeRate:  f(300),
			},
			wantRef: f(300000),
			wantPct: 0,
			wantRem: 300000,
		},
		{
			name:      "no budget configuration at all",
			totalCost: 50000,
			project:   model.Project{Currency: "USD"},
			wantRef:   nil,
		},
		{
			name:      "zero reference budget never divides",
			totalCost: 100,
			project: model.Project{
				Currency:      "PKR",
				WorkingBudget: f(0),
			},
			wantRef:  f(0),
			wantPct:  0,
			wantRem:  -100,
			wantOver: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := conv.Consumption(tt.totalCost, &tt.project)
			checkOptional(t, "ReferenceBudget", got.ReferenceBudget, tt.wantRef)
			if tt.wantRef == nil {
				if got.ConsumedPercent != 0 || got.Remaining != 0 || got.OverBudget {
					t.Errorf("no-budget status should be zero-valued, got %+v", got)
				}
				return
			}
			if got.ConsumedPercent != tt.wantPct {
				t.Errorf("ConsumedPercent = %v, want %v", got.ConsumedPercent, tt.wantPct)
			}
			if got.Remaining != tt.wantRem {
				t.Errorf("Remaining = %v, want %v", got.Remaining, tt.wantRem)
			}
			if got.OverBudget != tt.wantOver {
				t.Errorf("OverBudget = %v, want %v", got.OverBudget, tt.wantOver)
			}
		})
	}
}

func TestPayableAmount(t *testing.T) {
	p := model.Project{Budget: f(5000), FeePercent: f(20)}
	got := PayableAmount(&p)
	if got.Fee == nil || *got.Fee != 1000 {
		t.Errorf("Fee = %v, want 1000", got.Fee)
	}
	if got.Net == nil || *got.Net != 4000 {
		t.Errorf("Net = %v, want 4000", got.Net)
	}

	empty := PayableAmount(&model.Project{})
	if empty.Fee != nil || empty.Net != nil {
		t.Errorf("PayableAmount of budget-less project = %+v, want nils", empty)
	}
}
