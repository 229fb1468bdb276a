package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/model"
)

type MilestoneRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewMilestoneRepository(db *pgxpool.Pool, logger *zap.Logger) *MilestoneRepository {
	return &MilestoneRepository{db: db, logger: logger}
}

const milestoneColumns = `id, project_id, title, description, amount, currency, workflow_status, payment_status, due_date, released_at, created_at, updated_at`

func scanMilestone(row pgx.Row) (*model.Milestone, error) {
	var m model.Milestone
	err := row.Scan(
		&m.ID, &m.ProjectID, &m.Title, &m.Description, &m.Amount, &m.Currency,
		&m.WorkflowStatus, &m.PaymentStatus, &m.DueDate, &m.ReleasedAt,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MilestoneRepository) collect(rows pgx.Rows) ([]model.Milestone, error) {
	defer rows.Close()
	var milestones []model.Milestone
	for rows.Next() {
		var m model.Milestone
		if err := rows.Scan(
			&m.ID, &m.ProjectID, &m.Title, &m.Description, &m.Amount, &m.Currency,
			&m.WorkflowStatus, &m.PaymentStatus, &m.DueDate, &m.ReleasedAt,
			&m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		milestones = append(milestones, m)
	}
	return milestones, rows.Err()
}

// Insert creates a milestone.
func (r *MilestoneRepository) Insert(ctx context.Context, m *model.Milestone) error {
	r.logger.Debug("Inserting milestone",
		zap.Int64("project_id", m.ProjectID),
		zap.String("title", m.Title),
	)

	query := `
        INSERT INTO milestones (project_id, title, description, amount, currency, workflow_status, payment_status, due_date, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
        RETURNING id, created_at, updated_at
    `
	err := r.db.QueryRow(ctx, query,
		m.ProjectID, m.Title, m.Description, m.Amount, m.Currency,
		m.WorkflowStatus, m.PaymentStatus, m.DueDate,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to insert milestone", zap.Error(err))
		return err
	}

	r.logger.Info("Milestone inserted",
		zap.Int64("id", m.ID),
		zap.Int64("project_id", m.ProjectID),
	)
	return nil
}

// GetByID returns one milestone or ErrNotFound.
func (r *MilestoneRepository) GetByID(ctx context.Context, id int64) (*model.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones WHERE id = $1`
	return scanMilestone(r.db.QueryRow(ctx, query, id))
}

// Update persists the full field set of a milestone.
func (r *MilestoneRepository) Update(ctx context.Context, m *model.Milestone) error {
	query := `
        UPDATE milestones
        SET title = $2, description = $3, amount = $4, currency = $5,
            workflow_status = $6, payment_status = $7, due_date = $8,
            released_at = $9, updated_at = NOW()
        WHERE id = $1
    `
	tag, err := r.db.Exec(ctx, query,
		m.ID, m.Title, m.Description, m.Amount, m.Currency,
		m.WorkflowStatus, m.PaymentStatus, m.DueDate, m.ReleasedAt,
	)
	if err != nil {
		r.logger.Error("Failed to update milestone", zap.Int64("id", m.ID), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a milestone.
func (r *MilestoneRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM milestones WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	r.logger.Info("Milestone deleted", zap.Int64("id", id))
	return nil
}

// List returns all milestones.
func (r *MilestoneRepository) List(ctx context.Context) ([]model.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

// ListByProject returns the project's milestones.
func (r *MilestoneRepository) ListByProject(ctx context.Context, projectID int64) ([]model.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones WHERE project_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

// ListReleasedBetween returns milestones released in [from, to).
func (r *MilestoneRepository) ListReleasedBetween(ctx context.Context, from, to time.Time) ([]model.Milestone, error) {
	query := `
        SELECT ` + milestoneColumns + `
        FROM milestones
        WHERE payment_status = $1 AND released_at >= $2 AND released_at < $3
        ORDER BY released_at
    `
	rows, err := r.db.Query(ctx, query, model.PaymentReleased, from, to)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}
