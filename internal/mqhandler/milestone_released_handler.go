package mqhandler

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/model"
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/mq"
)

// NotificationLogStore persists consumed release events. The pgx repository
// satisfies it; tests substitute failing fakes.
type NotificationLogStore interface {
	Insert(ctx context.Context, log *model.NotificationLog) error
}

// EventDeduper makes redeliveries harmless across worker replicas. A key
// acquired for an event that then fails to process must be released, so the
// broker's redelivery gets another attempt instead of a silent drop.
type EventDeduper interface {
	AcquireOnce(ctx context.Context, handler string, entityID int64) bool
	Release(ctx context.Context, handler string, entityID int64)
}

const dedupHandlerName = "milestone_released"

// MilestoneReleasedHandler consumes milestone.released events and records
// them in the notifications log.
type MilestoneReleasedHandler struct {
	store   NotificationLogStore
	deduper EventDeduper
	logger  *zap.Logger
}

func NewMilestoneReleasedHandler(store NotificationLogStore, deduper EventDeduper, logger *zap.Logger) *MilestoneReleasedHandler {
	return &MilestoneReleasedHandler{
		store:   store,
		deduper: deduper,
		logger:  logger,
	}
}

func (h *MilestoneReleasedHandler) HandleMilestoneReleased(ctx context.Context, raw json.RawMessage) error {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("Panic in HandleMilestoneReleased",
				zap.Any("panic", r),
			)
		}
	}()

	var p mq.MilestoneReleasedPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.logger.Error("Failed to unmarshal milestone released payload (non-retryable)",
			zap.Error(err),
			zap.String("raw_payload", string(raw)),
		)
		return fmt.Errorf("json_unmarshal_error: %w", err)
	}

	if !h.deduper.AcquireOnce(ctx, dedupHandlerName, p.MilestoneID) {
		h.logger.Info("Duplicate milestone released event, skipping",
			zap.Int64("milestone_id", p.MilestoneID),
		)
		return nil
	}

	h.logger.Info("Creating notification log",
		zap.Int64("milestone_id", p.MilestoneID),
		zap.Int64("project_id", p.ProjectID),
	)

	message := fmt.Sprintf("Milestone %q released on project %q: %.2f %s",
		p.Title, p.ProjectName, p.Amount, p.Currency)
	if !p.LedgerRecorded {
		message += " (ledger write pending)"
	}

	log := &model.NotificationLog{
		MilestoneID: p.MilestoneID,
		ProjectID:   p.ProjectID,
		Message:     message,
	}

	if err := h.store.Insert(ctx, log); err != nil {
		// Give the dedup key back: the redelivery must not be classified
		// as a duplicate of an event that was never recorded.
		h.deduper.Release(ctx, dedupHandlerName, p.MilestoneID)
		h.logger.Error("Failed to insert notification log, releasing dedup key for retry",
			zap.Int64("milestone_id", p.MilestoneID),
			zap.Error(err),
		)
		return err
	}

	h.logger.Info("Notification log created successfully",
		zap.Int64("milestone_id", p.MilestoneID),
	)
	return nil
}
