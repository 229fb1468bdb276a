package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/model"
)

type TimeEntryRepository struct {
	db *pgxpool.Pool
}

func NewTimeEntryRepository(db *pgxpool.Pool) *TimeEntryRepository {
	return &TimeEntryRepository{db: db}
}

const timeEntryColumns = `te.id, te.task_id, te.worker_id, te.start_time, te.end_time, te.duration_seconds, te.billable`

func collectEntries(rows pgx.Rows) ([]model.TimeEntry, error) {
	defer rows.Close()
	var entries []model.TimeEntry
	for rows.Next() {
		var e model.TimeEntry
		if err := rows.Scan(
			&e.ID, &e.TaskID, &e.WorkerID, &e.StartTime, &e.EndTime,
			&e.DurationSeconds, &e.Billable,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ListByProject returns every time entry logged against the project's tasks.
func (r *TimeEntryRepository) ListByProject(ctx context.Context, projectID int64) ([]model.TimeEntry, error) {
	query := `
        SELECT ` + timeEntryColumns + `
        FROM time_entries te
        JOIN tasks t ON t.id = te.task_id
        WHERE t.project_id = $1
        ORDER BY te.id
    `
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	return collectEntries(rows)
}

// ListByWorker returns a worker's time entries across all projects.
func (r *TimeEntryRepository) ListByWorker(ctx context.Context, workerID int64) ([]model.TimeEntry, error) {
	query := `
        SELECT ` + timeEntryColumns + `
        FROM time_entries te
        WHERE te.worker_id = $1
        ORDER BY te.id
    `
	rows, err := r.db.Query(ctx, query, workerID)
	if err != nil {
		return nil, err
	}
	return collectEntries(rows)
}

// ListStartedBetween returns entries whose start time falls in [from, to).
func (r *TimeEntryRepository) ListStartedBetween(ctx context.Context, from, to time.Time) ([]model.TimeEntry, error) {
	query := `
        SELECT ` + timeEntryColumns + `
        FROM time_entries te
        WHERE te.start_time >= $1 AND te.start_time < $2
        ORDER BY te.id
    `
	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	return collectEntries(rows)
}

// TaskProjects maps task IDs to their project IDs, for grouping entries
// fetched across projects.
func (r *TimeEntryRepository) TaskProjects(ctx context.Context) (map[int64]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT id, project_id FROM tasks`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64]int64)
	for rows.Next() {
		var taskID, projectID int64
		if err := rows.Scan(&taskID, &projectID); err != nil {
			return nil, err
		}
		out[taskID] = projectID
	}
	return out, rows.Err()
}
