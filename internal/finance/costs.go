package finance

import (
	"sort"

	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/model"
)

// TaskCost is the actual-versus-estimated cost of one task.
type TaskCost struct {
	TaskID         int64            `json:"task_id"`
	Title          string           `json:"title"`
	Status         model.TaskStatus `json:"status"`
	EstimatedHours *float64         `json:"estimated_hours,omitempty"`
	// EstimatedCost is estimated hours priced at the assignee's hourly
	// rate; nil when either input is missing.
	EstimatedCost *float64 `json:"estimated_cost,omitempty"`
	ActualHours   float64  `json:"actual_hours"`
	ActualCost    float64  `json:"actual_cost"`
	// EfficiencyPercent compares estimate to actual hours; 0 when actual
	// hours is zero.
	EfficiencyPercent float64 `json:"efficiency_percent"`
}

// WorkerCost is one worker's share inside a role bucket.
type WorkerCost struct {
	WorkerID int64   `json:"worker_id"`
	Name     string  `json:"name"`
	Hours    float64 `json:"hours"`
	Cost     float64 `json:"cost"`
}

// RoleCost groups cost by agency role with a per-worker breakdown.
type RoleCost struct {
	Role    model.Role   `json:"role"`
	Hours   float64      `json:"hours"`
	Cost    float64      `json:"cost"`
	Workers []WorkerCost `json:"workers"`
}

// CostTotals carries the pre-rounding accumulators for downstream math
// (budget consumption, profit). Display fields on CostBreakdown are rounded;
// these are not.
type CostTotals struct {
	Cost  float64 `json:"cost"`
	Hours float64 `json:"hours"`
}

// CostBreakdown is the result of one aggregation pass over a project's tasks
// and time entries.
type CostBreakdown struct {
	TotalCost  float64    `json:"total_cost"`
	TotalHours float64    `json:"total_hours"`
	Tasks      []TaskCost `json:"tasks"`
	Roles      []RoleCost `json:"roles"`
	Exact      CostTotals `json:"-"`
}

// roleOrder fixes the display order of role buckets.
var roleOrder = []model.Role{
	model.RoleDeveloper,
	model.RoleDesigner,
	model.RoleQC,
	model.RoleProjectManager,
	model.RoleAdmin,
}

// Aggregator walks time entries and accumulates cost into task, role, worker
// and project buckets in a single scan.
type Aggregator struct {
	comp Compensation
}

func NewAggregator(comp Compensation) Aggregator {
	return Aggregator{comp: comp}
}

type roleBucket struct {
	hours   float64
	cost    float64
	workers map[int64]*WorkerCost
}

// Aggregate computes the full cost breakdown. entries maps task ID to that
// task's time entries; workers maps worker ID to the worker. An entry whose
// worker is not in the map still counts its hours but contributes no cost
// and no role bucket (stale references are not an error).
func (a Aggregator) Aggregate(tasks []model.Task, entries map[int64][]model.TimeEntry, workers map[int64]model.Worker) CostBreakdown {
	var totalCost, totalHours float64
	taskCosts := make([]TaskCost, 0, len(tasks))
	roles := make(map[model.Role]*roleBucket)

	for _, task := range tasks {
		var taskHours, taskCost float64
		for _, entry := range entries[task.ID] {
			hours := entry.Hours()
			taskHours += hours
			totalHours += hours

			worker, ok := workers[entry.WorkerID]
			if !ok {
				continue
			}
			cost := hours * a.comp.HourlyRate(worker.MonthlySalary)
			taskCost += cost
			totalCost += cost

			bucket := roles[worker.Role]
			if bucket == nil {
				bucket = &roleBucket{workers: make(map[int64]*WorkerCost)}
				roles[worker.Role] = bucket
			}
			bucket.hours += hours
			bucket.cost += cost
			wc := bucket.workers[worker.ID]
			if wc == nil {
				wc = &WorkerCost{WorkerID: worker.ID, Name: worker.Name}
				bucket.workers[worker.ID] = wc
			}
			wc.Hours += hours
			wc.Cost += cost
		}

		tc := TaskCost{
			TaskID:         task.ID,
			Title:          task.Title,
			Status:         task.Status,
			EstimatedHours: task.EstimatedHours,
			ActualHours:    RoundHours(taskHours),
			ActualCost:     RoundMoney(taskCost),
		}
		if task.EstimatedHours != nil && task.AssigneeID != nil {
			if assignee, ok := workers[*task.AssigneeID]; ok {
				est := RoundMoney(*task.EstimatedHours * a.comp.HourlyRate(assignee.MonthlySalary))
				tc.EstimatedCost = &est
			}
		}
		if task.EstimatedHours != nil && taskHours > 0 {
			tc.EfficiencyPercent = RoundPercent(*task.EstimatedHours / taskHours * 100)
		}
		taskCosts = append(taskCosts, tc)
	}

	return CostBreakdown{
		TotalCost:  RoundMoney(totalCost),
		TotalHours: RoundHours(totalHours),
		Tasks:      taskCosts,
		Roles:      flattenRoles(roles),
		Exact:      CostTotals{Cost: totalCost, Hours: totalHours},
	}
}

func flattenRoles(roles map[model.Role]*roleBucket) []RoleCost {
	out := make([]RoleCost, 0, len(roles))
	for _, role := range roleOrder {
		bucket, ok := roles[role]
		if !ok {
			continue
		}
		workers := make([]WorkerCost, 0, len(bucket.workers))
		for _, wc := range bucket.workers {
			workers = append(workers, WorkerCost{
				WorkerID: wc.WorkerID,
				Name:     wc.Name,
				Hours:    RoundHours(wc.Hours),
				Cost:     RoundMoney(wc.Cost),
			})
		}
		sort.Slice(workers, func(i, j int) bool { return workers[i].WorkerID < workers[j].WorkerID })
		out = append(out, RoleCost{
			Role:    role,
			Hours:   RoundHours(bucket.hours),
			Cost:    RoundMoney(bucket.cost),
			Workers: workers,
		})
	}
	return out
}
