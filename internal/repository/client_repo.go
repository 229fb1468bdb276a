package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/model"
)

type ClientRepository struct {
	db *pgxpool.Pool
}

func NewClientRepository(db *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{db: db}
}

// GetByID returns one client or ErrNotFound.
func (r *ClientRepository) GetByID(ctx context.Context, id int64) (*model.Client, error) {
	query := `SELECT id, name, kind, created_at FROM clients WHERE id = $1`
	var c model.Client
	err := r.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Kind, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all clients.
func (r *ClientRepository) List(ctx context.Context) ([]model.Client, error) {
	query := `SELECT id, name, kind, created_at FROM clients ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []model.Client
	for rows.Next() {
		var c model.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Kind, &c.CreatedAt); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}
