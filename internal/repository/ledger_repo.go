package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/model"
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/pkg/metrics"
)

// LedgerRepository writes release transactions to the accounting ledger.
// The engine never reads them back.
type LedgerRepository struct {
	db *pgxpool.Pool
}

func NewLedgerRepository(db *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Record inserts one ledger transaction.
func (r *LedgerRepository) Record(ctx context.Context, tx *model.LedgerTransaction) error {
	start := time.Now()
	defer func() { metrics.RecordDBQueryDuration("insert", "ledger_transactions", time.Since(start)) }()

	query := `
        INSERT INTO ledger_transactions
            (milestone_id, milestone_title, amount, currency, project_id, project_name, client_name, fee_percent, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
        RETURNING id
    `
	return r.db.QueryRow(ctx, query,
		tx.MilestoneID, tx.MilestoneTitle, tx.Amount, tx.Currency,
		tx.ProjectID, tx.ProjectName, tx.ClientName, tx.FeePercent,
	).Scan(&tx.ID)
}
