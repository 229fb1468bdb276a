package finance

import (
	"time"

	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/model"
)

// MonthlyPoint is one calendar month of the revenue/cost trend.
type MonthlyPoint struct {
	Month       string  `json:"month"` // "2006-01"
	Revenue     float64 `json:"revenue"`
	Costs       float64 `json:"costs"`
	Profit      float64 `json:"profit"`
	HoursWorked float64 `json:"hours_worked"`
}

// RevenueEvent is a released milestone's base-currency amount at its release
// time. Callers normalize currency before building the series.
type RevenueEvent struct {
	Amount     float64
	ReleasedAt time.Time
}

// TrendAnalyzer buckets revenue and cost into a trailing month series.
type TrendAnalyzer struct {
	comp Compensation
}

func NewTrendAnalyzer(comp Compensation) TrendAnalyzer {
	return TrendAnalyzer{comp: comp}
}

// TrailingMonths returns the most recent n calendar months, oldest first.
// Each month is an independent scan over the inputs; there is no
// cross-month state. Revenue comes from release timestamps, costs and hours
// from time-entry start times.
func (t TrendAnalyzer) TrailingMonths(n int, now time.Time, revenue []RevenueEvent, entries []model.TimeEntry, workers map[int64]model.Worker) []MonthlyPoint {
	points := make([]MonthlyPoint, 0, n)
	for i := n - 1; i >= 0; i-- {
		start := firstOfMonth(now).AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0)
		points = append(points, t.monthPoint(start, end, revenue, entries, workers))
	}
	return points
}

func (t TrendAnalyzer) monthPoint(start, end time.Time, revenue []RevenueEvent, entries []model.TimeEntry, workers map[int64]model.Worker) MonthlyPoint {
	var rev, costs, hours float64

	for _, ev := range revenue {
		if inRange(ev.ReleasedAt, start, end) {
			rev += ev.Amount
		}
	}
	for _, entry := range entries {
		if !inRange(entry.StartTime, start, end) {
			continue
		}
		h := entry.Hours()
		hours += h
		if worker, ok := workers[entry.WorkerID]; ok {
			costs += h * t.comp.HourlyRate(worker.MonthlySalary)
		}
	}

	return MonthlyPoint{
		Month:       start.Format("2006-01"),
		Revenue:     RoundMoney(rev),
		Costs:       RoundMoney(costs),
		Profit:      RoundMoney(rev - costs),
		HoursWorked: RoundHours(hours),
	}
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
