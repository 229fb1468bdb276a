package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/model"
)

type WorkerRepository struct {
	db *pgxpool.Pool
}

func NewWorkerRepository(db *pgxpool.Pool) *WorkerRepository {
	return &WorkerRepository{db: db}
}

const workerColumns = `id, name, email, password_hash, role, employment, monthly_salary, active, created_at, updated_at`

func scanWorker(row pgx.Row) (*model.Worker, error) {
	var w model.Worker
	err := row.Scan(
		&w.ID, &w.Name, &w.Email, &w.PasswordHash, &w.Role, &w.Employment,
		&w.MonthlySalary, &w.Active, &w.CreatedAt, &w.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// Create inserts a new worker.
func (r *WorkerRepository) Create(ctx context.Context, w *model.Worker) error {
	query := `
        INSERT INTO workers (name, email, password_hash, role, employment, monthly_salary, active, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
        RETURNING id
    `
	return r.db.QueryRow(ctx, query,
		w.Name, w.Email, w.PasswordHash, w.Role, w.Employment, w.MonthlySalary, w.Active,
	).Scan(&w.ID)
}

// GetByID returns one worker or ErrNotFound.
func (r *WorkerRepository) GetByID(ctx context.Context, id int64) (*model.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers WHERE id = $1`
	return scanWorker(r.db.QueryRow(ctx, query, id))
}

// FindByEmail returns one worker by email or ErrNotFound.
func (r *WorkerRepository) FindByEmail(ctx context.Context, email string) (*model.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers WHERE email = $1`
	return scanWorker(r.db.QueryRow(ctx, query, email))
}

// List returns all workers.
func (r *WorkerRepository) List(ctx context.Context) ([]model.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workers []model.Worker
	for rows.Next() {
		var w model.Worker
		if err := rows.Scan(
			&w.ID, &w.Name, &w.Email, &w.PasswordHash, &w.Role, &w.Employment,
			&w.MonthlySalary, &w.Active, &w.CreatedAt, &w.UpdatedAt,
		); err != nil {
			return nil, err
		}
		workers = append(workers, w)
	}
	return workers, rows.Err()
}
