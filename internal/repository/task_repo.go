package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/model"
)

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

// ListByProject returns the project's tasks.
func (r *TaskRepository) ListByProject(ctx context.Context, projectID int64) ([]model.Task, error) {
	query := `
        SELECT id, project_id, title, status, estimated_hours, assignee_id, created_at, updated_at
        FROM tasks
        WHERE project_id = $1
        ORDER BY id
    `
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(
			&t.ID, &t.ProjectID, &t.Title, &t.Status,
			&t.EstimatedHours, &t.AssigneeID, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
