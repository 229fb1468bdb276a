package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/model"
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/pkg/metrics"
)

type ProjectRepository struct {
	db *pgxpool.Pool
}

func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, name, status, client_id, currency, budget, fee_percent, working_budget, exchange_rate, created_at, updated_at`

// GetByID returns one project or ErrNotFound.
func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*model.Project, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQueryDuration("select", "projects", time.Since(start)) }()

	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	var p model.Project
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Status, &p.ClientID, &p.Currency,
		&p.Budget, &p.FeePercent, &p.WorkingBudget, &p.ExchangeRate,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all projects.
func (r *ProjectRepository) List(ctx context.Context) ([]model.Project, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQueryDuration("select", "projects", time.Since(start)) }()

	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Status, &p.ClientID, &p.Currency,
			&p.Budget, &p.FeePercent, &p.WorkingBudget, &p.ExchangeRate,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// ListMembers returns the project's member assignments.
func (r *ProjectRepository) ListMembers(ctx context.Context, projectID int64) ([]model.ProjectMember, error) {
	query := `
        SELECT project_id, worker_id, role_label
        FROM project_members
        WHERE project_id = $1
        ORDER BY worker_id
    `
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []model.ProjectMember
	for rows.Next() {
		var m model.ProjectMember
		if err := rows.Scan(&m.ProjectID, &m.WorkerID, &m.RoleLabel); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// FinancialConfigPatch carries the optional fields of a financial config
// update. Nil means "leave unchanged".
type FinancialConfigPatch struct {
	FeePercent    *float64 `json:"fee_percent,omitempty"`
	WorkingBudget *float64 `json:"working_budget,omitempty"`
	ExchangeRate  *float64 `json:"exchange_rate,omitempty"`
}

// UpdateFinancialConfig patches the project's financial configuration. It is
// a pure field update with no side effects beyond persistence.
func (r *ProjectRepository) UpdateFinancialConfig(ctx context.Context, id int64, patch FinancialConfigPatch) (*model.Project, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQueryDuration("update", "projects", time.Since(start)) }()

	query := `
        UPDATE projects
        SET fee_percent    = COALESCE($2, fee_percent),
            working_budget = COALESCE($3, working_budget),
            exchange_rate  = COALESCE($4, exchange_rate),
            updated_at     = NOW()
        WHERE id = $1
        RETURNING ` + projectColumns + `
    `
	var p model.Project
	err := r.db.QueryRow(ctx, query, id, patch.FeePercent, patch.WorkingBudget, patch.ExchangeRate).Scan(
		&p.ID, &p.Name, &p.Status, &p.ClientID, &p.Currency,
		&p.Budget, &p.FeePercent, &p.WorkingBudget, &p.ExchangeRate,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
