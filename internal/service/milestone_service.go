package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/finance"
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/model"
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/mq"
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/pkg/circuitbreaker"
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/pkg/metrics"
)

// MilestoneService owns milestone commands and the release transition. The
// ledger write on release is fire-and-forget relative to the milestone
// update: the update never fails or rolls back because the ledger was
// unreachable.
type MilestoneService struct {
	milestones MilestoneStore
	projects   ProjectStore
	clients    ClientStore
	ledger     LedgerRecorder
	publisher  EventPublisher
	breaker    *circuitbreaker.CircuitBreaker
	cache      Cache
	logger     *zap.Logger
	now        func() time.Time
}

func NewMilestoneService(
	milestones MilestoneStore,
	projects ProjectStore,
	clients ClientStore,
	ledger LedgerRecorder,
	publisher EventPublisher,
	breaker *circuitbreaker.CircuitBreaker,
	cache Cache,
	logger *zap.Logger,
) *MilestoneService {
	return &MilestoneService{
		milestones: milestones,
		projects:   projects,
		clients:    clients,
		ledger:     ledger,
		publisher:  publisher,
		breaker:    breaker,
		cache:      cache,
		logger:     logger,
		now:        time.Now,
	}
}

type CreateMilestoneInput struct {
	ProjectID   int64      `json:"project_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Amount      float64    `json:"amount"`
	Currency    *string    `json:"currency,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// Create adds a milestone in the initial pending state.
func (s *MilestoneService) Create(ctx context.Context, in CreateMilestoneInput) (*model.Milestone, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if in.Amount < 0 {
		return nil, fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	}
	if _, err := s.projects.GetByID(ctx, in.ProjectID); err != nil {
		return nil, err
	}

	m := &model.Milestone{
		ProjectID:      in.ProjectID,
		Title:          in.Title,
		Description:    in.Description,
		Amount:         in.Amount,
		Currency:       in.Currency,
		WorkflowStatus: model.WorkflowNotStarted,
		PaymentStatus:  model.PaymentPending,
		DueDate:        in.DueDate,
	}
	if err := s.milestones.Insert(ctx, m); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, CacheKeyOverview)
	return m, nil
}

type UpdateMilestoneInput struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Amount      *float64   `json:"amount,omitempty"`
	Currency    *string    `json:"currency,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	// Status is the external vocabulary ("released", "pending", or a
	// canonical workflow name). It always goes through the translation
	// table; callers cannot set workflow or payment status directly.
	Status *string `json:"status,omitempty"`
}

// UpdateResult reports a milestone update together with the outcome of the
// release side effects, so callers can detect drift between the milestone
// and the ledger instead of losing it in a log line.
type UpdateResult struct {
	Milestone *model.Milestone `json:"milestone"`
	// Released is true when this update performed the release transition.
	Released       bool   `json:"released"`
	LedgerRecorded bool   `json:"ledger_recorded"`
	LedgerError    string `json:"ledger_error,omitempty"`
}

// Update patches a milestone. When the persisted workflow status becomes
// COMPLETED and was not already, the payment is released: ReleasedAt is
// stamped once and the ledger collaborator is invoked exactly once,
// best-effort. Re-releasing an already-completed milestone does neither.
func (s *MilestoneService) Update(ctx context.Context, id int64, in UpdateMilestoneInput) (*UpdateResult, error) {
	m, err := s.milestones.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	wasCompleted := m.WorkflowStatus == model.WorkflowCompleted

	if in.Title != nil {
		m.Title = *in.Title
	}
	if in.Description != nil {
		m.Description = *in.Description
	}
	if in.Amount != nil {
		if *in.Amount < 0 {
			return nil, fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
		}
		m.Amount = *in.Amount
	}
	if in.Currency != nil {
		m.Currency = in.Currency
	}
	if in.DueDate != nil {
		m.DueDate = in.DueDate
	}

	released := false
	if in.Status != nil {
		workflow, payment, err := finance.TranslateStatus(*in.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		m.WorkflowStatus = workflow
		switch {
		case workflow == model.WorkflowCompleted && !wasCompleted:
			released = true
			now := s.now()
			m.ReleasedAt = &now
			m.PaymentStatus = model.PaymentReleased
		case workflow == model.WorkflowCompleted && wasCompleted:
			// Already released: ReleasedAt and the ledger are untouched.
		default:
			m.PaymentStatus = payment
		}
	}

	if err := s.milestones.Update(ctx, m); err != nil {
		return nil, err
	}

	result := &UpdateResult{Milestone: m, Released: released}
	if released {
		s.recordRelease(ctx, m, result)
	}

	s.cache.Invalidate(ctx, CacheKeyOverview)
	return result, nil
}

// Delete removes a milestone.
func (s *MilestoneService) Delete(ctx context.Context, id int64) error {
	if err := s.milestones.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, CacheKeyOverview)
	return nil
}

// List returns milestones, optionally filtered by project.
func (s *MilestoneService) List(ctx context.Context, projectID *int64) ([]model.Milestone, error) {
	if projectID != nil {
		if _, err := s.projects.GetByID(ctx, *projectID); err != nil {
			return nil, err
		}
		return s.milestones.ListByProject(ctx, *projectID)
	}
	return s.milestones.List(ctx)
}

// recordRelease performs the best-effort release side effects: one ledger
// write guarded by the circuit breaker, then the release event. Failures
// land in the result and the log, never in the returned error.
func (s *MilestoneService) recordRelease(ctx context.Context, m *model.Milestone, result *UpdateResult) {
	project, err := s.projects.GetByID(ctx, m.ProjectID)
	if err != nil {
		s.logger.Error("Ledger write skipped: project lookup failed",
			zap.Int64("milestone_id", m.ID),
			zap.Int64("project_id", m.ProjectID),
			zap.Error(err),
		)
		metrics.IncrementLedgerWrite("failed")
		result.LedgerError = err.Error()
		return
	}

	clientName := ""
	if client, err := s.clients.GetByID(ctx, project.ClientID); err == nil {
		clientName = client.Name
	} else {
		s.logger.Warn("Client lookup failed for ledger write",
			zap.Int64("client_id", project.ClientID),
			zap.Error(err),
		)
	}

	currency := finance.MilestoneCurrency(*m, project.Currency)
	tx := &model.LedgerTransaction{
		MilestoneID:    m.ID,
		MilestoneTitle: m.Title,
		Amount:         m.Amount,
		Currency:       currency,
		ProjectID:      project.ID,
		ProjectName:    project.Name,
		ClientName:     clientName,
		FeePercent:     project.FeePercent,
	}

	write := func() error { return s.ledger.Record(ctx, tx) }
	if s.breaker != nil {
		err = s.breaker.Execute(write)
	} else {
		err = write()
	}
	if err != nil {
		s.logger.Error("Ledger write failed, milestone update stands",
			zap.Int64("milestone_id", m.ID),
			zap.Error(err),
		)
		if errors.Is(err, circuitbreaker.ErrOpen) {
			metrics.IncrementLedgerWrite("rejected")
		} else {
			metrics.IncrementLedgerWrite("failed")
		}
		result.LedgerError = err.Error()
	} else {
		result.LedgerRecorded = true
		metrics.IncrementLedgerWrite("success")
	}

	if s.publisher == nil {
		return
	}
	payload := mq.MilestoneReleasedPayload{
		MilestoneID:    m.ID,
		ProjectID:      project.ID,
		ProjectName:    project.Name,
		Title:          m.Title,
		Amount:         m.Amount,
		Currency:       currency,
		FeePercent:     project.FeePercent,
		LedgerRecorded: result.LedgerRecorded,
		ReleasedAt:     *m.ReleasedAt,
	}
	if err := s.publisher.Publish(mq.RoutingKeyMilestoneReleased, payload); err != nil {
		s.logger.Error("Failed to publish milestone.released",
			zap.Int64("milestone_id", m.ID),
			zap.Error(err),
		)
	}
}
