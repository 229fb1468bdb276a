package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/model"
)

type NotificationLogRepository struct {
	db *pgxpool.Pool
}

func NewNotificationLogRepository(db *pgxpool.Pool) *NotificationLogRepository {
	return &NotificationLogRepository{db: db}
}

func (r *NotificationLogRepository) Insert(ctx context.Context, log *model.NotificationLog) error {
	query := `
        INSERT INTO notifications_log (milestone_id, project_id, message, created_at)
        VALUES ($1, $2, $3, NOW())
    `
	_, err := r.db.Exec(ctx, query, log.MilestoneID, log.ProjectID, log.Message)
	return err
}
