package service

import (
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/finance"
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/model"
)

// Report shapes consumed by the dashboard UI. All monetary leaves are in
// base currency and rounded to whole units; hours carry two decimals.

// ProjectRow is one project's line in the accounts overview.
type ProjectRow struct {
	ProjectID      int64               `json:"project_id"`
	Name           string              `json:"name"`
	ClientName     string              `json:"client_name"`
	Status         model.ProjectStatus `json:"status"`
	Revenue        float64             `json:"revenue"`
	PendingRevenue float64             `json:"pending_revenue"`
	Cost           float64             `json:"cost"`
	Profit         float64             `json:"profit"`
	Hours          float64             `json:"hours"`
	OverBudget     bool                `json:"over_budget"`
}

type AccountsOverview struct {
	TotalProjects  int                    `json:"total_projects"`
	ActiveProjects int                    `json:"active_projects"`
	TotalRevenue   float64                `json:"total_revenue"`
	PendingRevenue float64                `json:"pending_revenue"`
	TotalCost      float64                `json:"total_cost"`
	TotalProfit    float64                `json:"total_profit"`
	TotalHours     float64                `json:"total_hours"`
	Projects       []ProjectRow           `json:"projects"`
	Trend          []finance.MonthlyPoint `json:"trend"`
}

// MilestoneTotals summarizes a project's milestone amounts in base currency.
type MilestoneTotals struct {
	ReleasedCount  int     `json:"released_count"`
	PendingCount   int     `json:"pending_count"`
	ReleasedAmount float64 `json:"released_amount"`
	PendingAmount  float64 `json:"pending_amount"`
	TotalAmount    float64 `json:"total_amount"`
}

type ProjectFinancials struct {
	ProjectID   int64               `json:"project_id"`
	ProjectName string              `json:"project_name"`
	ClientName  string              `json:"client_name"`
	Status      model.ProjectStatus `json:"status"`
	Currency    string              `json:"currency"`

	// Budget figures in the project currency.
	Budget        *float64 `json:"budget,omitempty"`
	FeePercent    *float64 `json:"fee_percent,omitempty"`
	FeeAmount     *float64 `json:"fee_amount,omitempty"`
	PayableAmount *float64 `json:"payable_amount,omitempty"`
	WorkingBudget *float64 `json:"working_budget,omitempty"`
	ExchangeRate  float64  `json:"exchange_rate"`

	Budgeting  finance.BudgetStatus  `json:"budgeting"`
	Costs      finance.CostBreakdown `json:"costs"`
	Milestones MilestoneTotals       `json:"milestones"`
}

type MemberSummary struct {
	WorkerID  int64  `json:"worker_id"`
	Name      string `json:"name"`
	RoleLabel string `json:"role_label"`
}

type ProjectAccountSummary struct {
	ProjectID      int64           `json:"project_id"`
	ProjectName    string          `json:"project_name"`
	ClientName     string          `json:"client_name"`
	Currency       string          `json:"currency"`
	ReleasedAmount float64         `json:"released_amount"`
	PendingAmount  float64         `json:"pending_amount"`
	TotalAmount    float64         `json:"total_amount"`
	TotalCost      float64         `json:"total_cost"`
	TotalHours     float64         `json:"total_hours"`
	Profit         float64         `json:"profit"`
	Members        []MemberSummary `json:"members"`
}

type DeveloperProjectRow struct {
	ProjectID   int64   `json:"project_id"`
	ProjectName string  `json:"project_name"`
	Hours       float64 `json:"hours"`
	Cost        float64 `json:"cost"`
}

type DeveloperAccountSummary struct {
	WorkerID   int64                 `json:"worker_id"`
	Name       string                `json:"name"`
	Role       model.Role            `json:"role"`
	Employment model.EmploymentKind  `json:"employment"`
	HourlyRate float64               `json:"hourly_rate"`
	TotalHours float64               `json:"total_hours"`
	TotalCost  float64               `json:"total_cost"`
	// AverageHourlyRate is realized cost over realized hours; 0 when no
	// hours are logged.
	AverageHourlyRate float64               `json:"average_hourly_rate"`
	EntryCount        int                   `json:"entry_count"`
	Projects          []DeveloperProjectRow `json:"projects"`
}

type TimeByProjectRow struct {
	ProjectID     int64   `json:"project_id"`
	ProjectName   string  `json:"project_name"`
	Hours         float64 `json:"hours"`
	BillableHours float64 `json:"billable_hours"`
	Cost          float64 `json:"cost"`
	EntryCount    int     `json:"entry_count"`
}
