package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/finance"
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/model"
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/pkg/metrics"
)

// Stores bundles the snapshot sources a report composition reads from.
type Stores struct {
	Projects    ProjectStore
	Clients     ClientStore
	Workers     WorkerStore
	Tasks       TaskStore
	TimeEntries TimeEntryStore
	Milestones  MilestoneStore
}

// FinanceService assembles the dashboard's financial reports. Each report
// is an independent computation over a snapshot fetched at the start of the
// call; the service keeps no state between requests.
type FinanceService struct {
	stores      Stores
	conv        *finance.Converter
	comp        finance.Compensation
	agg         finance.Aggregator
	trend       finance.TrendAnalyzer
	trendMonths int
	cache       Cache
	logger      *zap.Logger
	now         func() time.Time
}

func NewFinanceService(stores Stores, conv *finance.Converter, comp finance.Compensation, trendMonths int, cache Cache, logger *zap.Logger) *FinanceService {
	return &FinanceService{
		stores:      stores,
		conv:        conv,
		comp:        comp,
		agg:         finance.NewAggregator(comp),
		trend:       finance.NewTrendAnalyzer(comp),
		trendMonths: trendMonths,
		cache:       cache,
		logger:      logger,
		now:         time.Now,
	}
}

// Overview assembles the accounts overview across every project, including
// the trailing-month trend. The result is cached; any write to milestones
// or project financials invalidates it.
func (s *FinanceService) Overview(ctx context.Context) (*AccountsOverview, error) {
	var cached AccountsOverview
	if s.cache.Get(ctx, CacheKeyOverview, &cached) {
		return &cached, nil
	}

	start := time.Now()
	defer func() { metrics.RecordReportBuild("overview", time.Since(start)) }()

	projects, err := s.stores.Projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	workers, err := s.workersByID(ctx)
	if err != nil {
		return nil, err
	}
	clients, err := s.clientNames(ctx)
	if err != nil {
		return nil, err
	}

	overview := &AccountsOverview{TotalProjects: len(projects)}
	var revenue, pending, cost, hours float64

	for i := range projects {
		p := &projects[i]
		if p.Status == model.ProjectActive {
			overview.ActiveProjects++
		}

		milestones, err := s.stores.Milestones.ListByProject(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("list milestones for project %d: %w", p.ID, err)
		}
		summary := s.conv.ClassifyMilestones(milestones, p.Currency, true)

		breakdown, err := s.projectCosts(ctx, p.ID, workers)
		if err != nil {
			return nil, err
		}

		budget := s.conv.Consumption(breakdown.Exact.Cost, p)

		revenue += summary.ReleasedAmount
		pending += summary.PendingAmount
		cost += breakdown.Exact.Cost
		hours += breakdown.Exact.Hours

		overview.Projects = append(overview.Projects, ProjectRow{
			ProjectID:      p.ID,
			Name:           p.Name,
			ClientName:     clients[p.ClientID],
			Status:         p.Status,
			Revenue:        finance.RoundMoney(summary.ReleasedAmount),
			PendingRevenue: finance.RoundMoney(summary.PendingAmount),
			Cost:           finance.RoundMoney(breakdown.Exact.Cost),
			Profit:         finance.RoundMoney(summary.ReleasedAmount - breakdown.Exact.Cost),
			Hours:          finance.RoundHours(breakdown.Exact.Hours),
			OverBudget:     budget.OverBudget,
		})
	}

	overview.TotalRevenue = finance.RoundMoney(revenue)
	overview.PendingRevenue = finance.RoundMoney(pending)
	overview.TotalCost = finance.RoundMoney(cost)
	overview.TotalProfit = finance.RoundMoney(revenue - cost)
	overview.TotalHours = finance.RoundHours(hours)

	trend, err := s.buildTrend(ctx, projects, workers)
	if err != nil {
		return nil, err
	}
	overview.Trend = trend

	s.cache.Set(ctx, CacheKeyOverview, overview)
	return overview, nil
}

// ProjectFinancials assembles the per-project financial report: budget and
// fee figures, cost breakdowns and milestone totals.
func (s *FinanceService) ProjectFinancials(ctx context.Context, projectID int64) (*ProjectFinancials, error) {
	start := time.Now()
	defer func() { metrics.RecordReportBuild("project_financials", time.Since(start)) }()

	p, err := s.stores.Projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	client, err := s.stores.Clients.GetByID(ctx, p.ClientID)
	if err != nil {
		return nil, fmt.Errorf("load client %d: %w", p.ClientID, err)
	}
	workers, err := s.workersByID(ctx)
	if err != nil {
		return nil, err
	}

	breakdown, err := s.projectCosts(ctx, p.ID, workers)
	if err != nil {
		return nil, err
	}

	milestones, err := s.stores.Milestones.ListByProject(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("list milestones for project %d: %w", p.ID, err)
	}
	summary := s.conv.ClassifyMilestones(milestones, p.Currency, true)

	payable := finance.PayableAmount(p)
	budget := s.conv.Consumption(breakdown.Exact.Cost, p)
	budget.Remaining = finance.RoundMoney(budget.Remaining)
	budget.ConsumedPercent = finance.RoundPercent(budget.ConsumedPercent)
	if budget.ReferenceBudget != nil {
		v := finance.RoundMoney(*budget.ReferenceBudget)
		budget.ReferenceBudget = &v
	}

	return &ProjectFinancials{
		ProjectID:     p.ID,
		ProjectName:   p.Name,
		ClientName:    client.Name,
		Status:        p.Status,
		Currency:      p.Currency,
		Budget:        p.Budget,
		FeePercent:    p.FeePercent,
		FeeAmount:     payable.Fee,
		PayableAmount: payable.Net,
		WorkingBudget: p.WorkingBudget,
		ExchangeRate:  s.conv.ProjectRate(p),
		Budgeting:     budget,
		Costs:         breakdown,
		Milestones:    milestoneTotals(summary),
	}, nil
}

// ProjectAccountSummary assembles the compact per-project account view.
func (s *FinanceService) ProjectAccountSummary(ctx context.Context, projectID int64) (*ProjectAccountSummary, error) {
	start := time.Now()
	defer func() { metrics.RecordReportBuild("project_account_summary", time.Since(start)) }()

	p, err := s.stores.Projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	client, err := s.stores.Clients.GetByID(ctx, p.ClientID)
	if err != nil {
		return nil, fmt.Errorf("load client %d: %w", p.ClientID, err)
	}
	workers, err := s.workersByID(ctx)
	if err != nil {
		return nil, err
	}

	breakdown, err := s.projectCosts(ctx, p.ID, workers)
	if err != nil {
		return nil, err
	}

	milestones, err := s.stores.Milestones.ListByProject(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("list milestones for project %d: %w", p.ID, err)
	}
	summary := s.conv.ClassifyMilestones(milestones, p.Currency, true)

	members, err := s.stores.Projects.ListMembers(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("list members for project %d: %w", p.ID, err)
	}
	memberRows := make([]MemberSummary, 0, len(members))
	for _, m := range members {
		row := MemberSummary{WorkerID: m.WorkerID, RoleLabel: m.RoleLabel}
		if w, ok := workers[m.WorkerID]; ok {
			row.Name = w.Name
		}
		memberRows = append(memberRows, row)
	}

	return &ProjectAccountSummary{
		ProjectID:      p.ID,
		ProjectName:    p.Name,
		ClientName:     client.Name,
		Currency:       p.Currency,
		ReleasedAmount: finance.RoundMoney(summary.ReleasedAmount),
		PendingAmount:  finance.RoundMoney(summary.PendingAmount),
		TotalAmount:    finance.RoundMoney(summary.TotalAmount),
		TotalCost:      breakdown.TotalCost,
		TotalHours:     breakdown.TotalHours,
		Profit:         finance.RoundMoney(summary.ReleasedAmount - breakdown.Exact.Cost),
		Members:        memberRows,
	}, nil
}

// DeveloperAccountSummary assembles one worker's cost and hours across all
// projects.
func (s *FinanceService) DeveloperAccountSummary(ctx context.Context, workerID int64) (*DeveloperAccountSummary, error) {
	start := time.Now()
	defer func() { metrics.RecordReportBuild("developer_account_summary", time.Since(start)) }()

	worker, err := s.stores.Workers.GetByID(ctx, workerID)
	if err != nil {
		return nil, err
	}

	entries, err := s.stores.TimeEntries.ListByWorker(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("list time entries for worker %d: %w", workerID, err)
	}
	taskProjects, err := s.stores.TimeEntries.TaskProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("map tasks to projects: %w", err)
	}
	projectNames, err := s.projectNames(ctx)
	if err != nil {
		return nil, err
	}

	rate := s.comp.HourlyRate(worker.MonthlySalary)

	type bucket struct {
		hours float64
		cost  float64
	}
	perProject := make(map[int64]*bucket)
	var totalHours, totalCost float64
	for _, e := range entries {
		h := e.Hours()
		c := h * rate
		totalHours += h
		totalCost += c

		projectID := taskProjects[e.TaskID]
		b := perProject[projectID]
		if b == nil {
			b = &bucket{}
			perProject[projectID] = b
		}
		b.hours += h
		b.cost += c
	}

	rows := make([]DeveloperProjectRow, 0, len(perProject))
	for projectID, b := range perProject {
		rows = append(rows, DeveloperProjectRow{
			ProjectID:   projectID,
			ProjectName: projectNames[projectID],
			Hours:       finance.RoundHours(b.hours),
			Cost:        finance.RoundMoney(b.cost),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ProjectID < rows[j].ProjectID })

	avgRate := 0.0
	if totalHours > 0 {
		avgRate = totalCost / totalHours
	}

	return &DeveloperAccountSummary{
		WorkerID:          worker.ID,
		Name:              worker.Name,
		Role:              worker.Role,
		Employment:        worker.Employment,
		HourlyRate:        finance.RoundRate(rate),
		TotalHours:        finance.RoundHours(totalHours),
		TotalCost:         finance.RoundMoney(totalCost),
		AverageHourlyRate: finance.RoundRate(avgRate),
		EntryCount:        len(entries),
		Projects:          rows,
	}, nil
}

// TimeByProject breaks tracked time and cost down per project.
func (s *FinanceService) TimeByProject(ctx context.Context) ([]TimeByProjectRow, error) {
	start := time.Now()
	defer func() { metrics.RecordReportBuild("time_by_project", time.Since(start)) }()

	projects, err := s.stores.Projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	workers, err := s.workersByID(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]TimeByProjectRow, 0, len(projects))
	for i := range projects {
		p := &projects[i]
		entries, err := s.stores.TimeEntries.ListByProject(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("list time entries for project %d: %w", p.ID, err)
		}

		var hours, billable, cost float64
		for _, e := range entries {
			h := e.Hours()
			hours += h
			if e.Billable {
				billable += h
			}
			if w, ok := workers[e.WorkerID]; ok {
				cost += h * s.comp.HourlyRate(w.MonthlySalary)
			}
		}

		rows = append(rows, TimeByProjectRow{
			ProjectID:     p.ID,
			ProjectName:   p.Name,
			Hours:         finance.RoundHours(hours),
			BillableHours: finance.RoundHours(billable),
			Cost:          finance.RoundMoney(cost),
			EntryCount:    len(entries),
		})
	}
	return rows, nil
}

// buildTrend composes the trailing-month revenue/cost series over every
// project.
func (s *FinanceService) buildTrend(ctx context.Context, projects []model.Project, workers map[int64]model.Worker) ([]finance.MonthlyPoint, error) {
	now := s.now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(s.trendMonths - 1), 0)
	to := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)

	released, err := s.stores.Milestones.ListReleasedBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list released milestones: %w", err)
	}
	entries, err := s.stores.TimeEntries.ListStartedBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list time entries: %w", err)
	}

	currencies := make(map[int64]string, len(projects))
	for _, p := range projects {
		currencies[p.ID] = p.Currency
	}

	revenue := make([]finance.RevenueEvent, 0, len(released))
	for _, m := range released {
		if m.ReleasedAt == nil {
			continue
		}
		revenue = append(revenue, finance.RevenueEvent{
			Amount:     s.conv.ToBaseValue(m.Amount, finance.MilestoneCurrency(m, currencies[m.ProjectID])),
			ReleasedAt: *m.ReleasedAt,
		})
	}

	return s.trend.TrailingMonths(s.trendMonths, now, revenue, entries, workers), nil
}

// projectCosts runs one aggregation pass over a project's tasks and entries.
func (s *FinanceService) projectCosts(ctx context.Context, projectID int64, workers map[int64]model.Worker) (finance.CostBreakdown, error) {
	tasks, err := s.stores.Tasks.ListByProject(ctx, projectID)
	if err != nil {
		return finance.CostBreakdown{}, fmt.Errorf("list tasks for project %d: %w", projectID, err)
	}
	entries, err := s.stores.TimeEntries.ListByProject(ctx, projectID)
	if err != nil {
		return finance.CostBreakdown{}, fmt.Errorf("list time entries for project %d: %w", projectID, err)
	}

	byTask := make(map[int64][]model.TimeEntry)
	for _, e := range entries {
		byTask[e.TaskID] = append(byTask[e.TaskID], e)
	}

	return s.agg.Aggregate(tasks, byTask, workers), nil
}

func (s *FinanceService) workersByID(ctx context.Context) (map[int64]model.Worker, error) {
	workers, err := s.stores.Workers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}
	out := make(map[int64]model.Worker, len(workers))
	for _, w := range workers {
		out[w.ID] = w
	}
	return out, nil
}

func (s *FinanceService) clientNames(ctx context.Context) (map[int64]string, error) {
	clients, err := s.stores.Clients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	out := make(map[int64]string, len(clients))
	for _, c := range clients {
		out[c.ID] = c.Name
	}
	return out, nil
}

func (s *FinanceService) projectNames(ctx context.Context) (map[int64]string, error) {
	projects, err := s.stores.Projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	out := make(map[int64]string, len(projects))
	for _, p := range projects {
		out[p.ID] = p.Name
	}
	return out, nil
}

func milestoneTotals(s finance.MilestoneSummary) MilestoneTotals {
	return MilestoneTotals{
		ReleasedCount:  len(s.Released),
		PendingCount:   len(s.Pending),
		ReleasedAmount: finance.RoundMoney(s.ReleasedAmount),
		PendingAmount:  finance.RoundMoney(s.PendingAmount),
		TotalAmount:    finance.RoundMoney(s.TotalAmount),
	}
}
