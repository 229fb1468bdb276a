package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/model"
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/mq"
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/repository"
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/pkg/circuitbreaker"
)

func ptr(s string) *string { return &s }

func newReleaseFixture(t *testing.T) (*MilestoneService, *fakeMilestones, *fakeLedger, *fakePublisher) {
	t.Helper()
	projects := newFakeProjects(&model.Project{
		ID: 1, Name: "Dashboard", ClientID: 7, Currency: "USD", FeePercent: fptr(10),
	})
	clients := newFakeClients(&model.Client{ID: 7, Name: "Acme"})
	milestones := newFakeMilestones(&model.Milestone{
		ID: 100, ProjectID: 1, Title: "Phase 1", Amount: 1000,
		WorkflowStatus: model.WorkflowInProgress,
		PaymentStatus:  model.PaymentPending,
	})
	ledger := &fakeLedger{}
	publisher := &fakePublisher{}

	svc := NewMilestoneService(milestones, projects, clients, ledger, publisher, nil, newFakeCache(), zap.NewNop())
	svc.now = func() time.Time {
		return time.Date(2026, time.August, 20, 10, 0, 0, 0, time.UTC)
	}
	return svc, milestones, ledger, publisher
}

func fptr(v float64) *float64 { return &v }

func TestMilestoneService_Release(t *testing.T) {
	svc, milestones, ledger, publisher := newReleaseFixture(t)

	result, err := svc.Update(context.Background(), 100, UpdateMilestoneInput{Status: ptr("released")})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if !result.Released {
		t.Error("Released = false, want true")
	}
	if !result.LedgerRecorded {
		t.Errorf("LedgerRecorded = false, want true (error: %s)", result.LedgerError)
	}

	m := result.Milestone
	if m.WorkflowStatus != model.WorkflowCompleted {
		t.Errorf("WorkflowStatus = %v, want COMPLETED", m.WorkflowStatus)
	}
	if m.PaymentStatus != model.PaymentReleased {
		t.Errorf("PaymentStatus = %v, want RELEASED", m.PaymentStatus)
	}
	want := time.Date(2026, time.August, 20, 10, 0, 0, 0, time.UTC)
	if m.ReleasedAt == nil || !m.ReleasedAt.Equal(want) {
		t.Errorf("ReleasedAt = %v, want %v", m.ReleasedAt, want)
	}

	stored, _ := milestones.GetByID(context.Background(), 100)
	if stored.PaymentStatus != model.PaymentReleased {
		t.Errorf("stored PaymentStatus = %v, want RELEASED", stored.PaymentStatus)
	}

	if len(ledger.records) != 1 {
		t.Fatalf("ledger writes = %d, want 1", len(ledger.records))
	}
	tx := ledger.records[0]
	if tx.MilestoneID != 100 || tx.Amount != 1000 || tx.Currency != "USD" {
		t.Errorf("ledger transaction = %+v", tx)
	}
	if tx.ProjectName != "Dashboard" || tx.ClientName != "Acme" {
		t.Errorf("ledger context = %q / %q, want Dashboard / Acme", tx.ProjectName, tx.ClientName)
	}
	if tx.FeePercent == nil || *tx.FeePercent != 10 {
		t.Errorf("ledger FeePercent = %v, want 10", tx.FeePercent)
	}

	if len(publisher.published) != 1 {
		t.Fatalf("published events = %d, want 1", len(publisher.published))
	}
	if publisher.published[0].routingKey != mq.RoutingKeyMilestoneReleased {
		t.Errorf("routing key = %q, want %q", publisher.published[0].routingKey, mq.RoutingKeyMilestoneReleased)
	}
}

func TestMilestoneService_ReleaseIsIdempotent(t *testing.T) {
	svc, milestones, ledger, _ := newReleaseFixture(t)

	first, err := svc.Update(context.Background(), 100, UpdateMilestoneInput{Status: ptr("released")})
	if err != nil {
		t.Fatalf("first Update() error = %v", err)
	}
	firstReleasedAt := *first.Milestone.ReleasedAt

	// Move the clock and release again.
	svc.now = func() time.Time {
		return time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	}
	second, err := svc.Update(context.Background(), 100, UpdateMilestoneInput{Status: ptr("released")})
	if err != nil {
		t.Fatalf("second Update() error = %v", err)
	}

	if second.Released {
		t.Error("second release reported Released = true, want false")
	}
	if len(ledger.records) != 1 {
		t.Errorf("ledger writes = %d, want 1 (no double write)", len(ledger.records))
	}
	stored, _ := milestones.GetByID(context.Background(), 100)
	if !stored.ReleasedAt.Equal(firstReleasedAt) {
		t.Errorf("ReleasedAt moved from %v to %v on re-release", firstReleasedAt, stored.ReleasedAt)
	}
}

func TestMilestoneService_LedgerFailureDoesNotFailUpdate(t *testing.T) {
	svc, milestones, ledger, _ := newReleaseFixture(t)
	ledger.err = errLedgerDown

	result, err := svc.Update(context.Background(), 100, UpdateMilestoneInput{Status: ptr("released")})
	if err != nil {
		t.Fatalf("Update() error = %v, want nil despite ledger failure", err)
	}

	if !result.Released {
		t.Error("Released = false, want true")
	}
	if result.LedgerRecorded {
		t.Error("LedgerRecorded = true, want false")
	}
	if result.LedgerError == "" {
		t.Error("LedgerError is empty, want the ledger failure surfaced")
	}

	stored, _ := milestones.GetByID(context.Background(), 100)
	if stored.PaymentStatus != model.PaymentReleased || stored.ReleasedAt == nil {
		t.Errorf("milestone not persisted as released: %+v", stored)
	}
}

func TestMilestoneService_UpdateStatusVocabulary(t *testing.T) {
	tests := []struct {
		name         string
		status       string
		wantWorkflow model.WorkflowStatus
		wantPayment  model.PaymentStatus
		wantReleased bool
	}{
		{"pending keeps payment pending", "pending", model.WorkflowNotStarted, model.PaymentPending, false},
		{"in_progress keeps payment pending", "in_progress", model.WorkflowInProgress, model.PaymentPending, false},
		{"cancelled cancels payment", "cancelled", model.WorkflowCancelled, model.PaymentCancelled, false},
		{"completed releases", "completed", model.WorkflowCompleted, model.PaymentReleased, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _, _ := newReleaseFixture(t)
			result, err := svc.Update(context.Background(), 100, UpdateMilestoneInput{Status: &tt.status})
			if err != nil {
				t.Fatalf("Update() error = %v", err)
			}
			if result.Milestone.WorkflowStatus != tt.wantWorkflow {
				t.Errorf("WorkflowStatus = %v, want %v", result.Milestone.WorkflowStatus, tt.wantWorkflow)
			}
			if result.Milestone.PaymentStatus != tt.wantPayment {
				t.Errorf("PaymentStatus = %v, want %v", result.Milestone.PaymentStatus, tt.wantPayment)
			}
			if result.Released != tt.wantReleased {
				t.Errorf("Released = %v, want %v", result.Released, tt.wantReleased)
			}
		})
	}
}

func TestMilestoneService_UpdateRejectsUnknownStatus(t *testing.T) {
	svc, _, ledger, _ := newReleaseFixture(t)

	_, err := svc.Update(context.Background(), 100, UpdateMilestoneInput{Status: ptr("paid")})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Update() error = %v, want ErrInvalidInput", err)
	}
	if len(ledger.records) != 0 {
		t.Errorf("ledger writes = %d, want 0", len(ledger.records))
	}
}

func TestMilestoneService_OpenBreakerRejectsLedgerWrite(t *testing.T) {
	projects := newFakeProjects(&model.Project{ID: 1, Name: "Dashboard", ClientID: 7, Currency: "USD"})
	clients := newFakeClients(&model.Client{ID: 7, Name: "Acme"})
	milestones := newFakeMilestones(
		&model.Milestone{ID: 100, ProjectID: 1, Title: "Phase 1", Amount: 1000,
			WorkflowStatus: model.WorkflowInProgress, PaymentStatus: model.PaymentPending},
		&model.Milestone{ID: 101, ProjectID: 1, Title: "Phase 2", Amount: 500,
			WorkflowStatus: model.WorkflowInProgress, PaymentStatus: model.PaymentPending},
	)
	ledger := &fakeLedger{err: errLedgerDown}
	breaker := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold:    1,
		SuccessThreshold:    1,
		Timeout:             time.Hour,
		HalfOpenMaxRequests: 1,
	})
	svc := NewMilestoneService(milestones, projects, clients, ledger, &fakePublisher{}, breaker, newFakeCache(), zap.NewNop())

	first, err := svc.Update(context.Background(), 100, UpdateMilestoneInput{Status: ptr("released")})
	if err != nil {
		t.Fatalf("first Update() error = %v", err)
	}
	if first.LedgerRecorded || first.LedgerError != errLedgerDown.Error() {
		t.Errorf("first result = recorded %v / %q, want the ledger failure surfaced", first.LedgerRecorded, first.LedgerError)
	}
	if ledger.calls != 1 {
		t.Fatalf("ledger calls = %d, want 1", ledger.calls)
	}

	// The breaker tripped on that failure; the next release must be
	// rejected without reaching the ledger.
	second, err := svc.Update(context.Background(), 101, UpdateMilestoneInput{Status: ptr("released")})
	if err != nil {
		t.Fatalf("second Update() error = %v", err)
	}
	if second.LedgerError != circuitbreaker.ErrOpen.Error() {
		t.Errorf("second LedgerError = %q, want %q", second.LedgerError, circuitbreaker.ErrOpen)
	}
	if ledger.calls != 1 {
		t.Errorf("ledger calls = %d, want 1 (open breaker must not call through)", ledger.calls)
	}
	if !second.Released {
		t.Error("Released = false, want true despite the rejected ledger write")
	}
}

func TestMilestoneService_UpdateInvalidatesOverviewCache(t *testing.T) {
	svc, _, _, _ := newReleaseFixture(t)
	fc := svc.cache.(*fakeCache)
	fc.Set(context.Background(), CacheKeyOverview, &AccountsOverview{TotalRevenue: 1})

	_, err := svc.Update(context.Background(), 100, UpdateMilestoneInput{Status: ptr("in_progress")})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if _, ok := fc.store[CacheKeyOverview]; ok {
		t.Errorf("overview still cached under %q after milestone update", CacheKeyOverview)
	}
}

func TestMilestoneService_Create(t *testing.T) {
	svc, milestones, _, _ := newReleaseFixture(t)

	m, err := svc.Create(context.Background(), CreateMilestoneInput{
		ProjectID: 1,
		Title:     "Phase 2",
		Amount:    2500,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if m.WorkflowStatus != model.WorkflowNotStarted || m.PaymentStatus != model.PaymentPending {
		t.Errorf("new milestone status = %v/%v, want NOT_STARTED/PENDING", m.WorkflowStatus, m.PaymentStatus)
	}
	if m.ReleasedAt != nil {
		t.Errorf("new milestone ReleasedAt = %v, want nil", m.ReleasedAt)
	}
	if _, err := milestones.GetByID(context.Background(), m.ID); err != nil {
		t.Errorf("created milestone not stored: %v", err)
	}

	t.Run("unknown project", func(t *testing.T) {
		_, err := svc.Create(context.Background(), CreateMilestoneInput{ProjectID: 99, Title: "x", Amount: 1})
		if !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("Create() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("missing title", func(t *testing.T) {
		_, err := svc.Create(context.Background(), CreateMilestoneInput{ProjectID: 1, Amount: 1})
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Create() error = %v, want ErrInvalidInput", err)
		}
	})
}

func TestMilestoneService_Delete(t *testing.T) {
	svc, milestones, _, _ := newReleaseFixture(t)

	if err := svc.Delete(context.Background(), 100); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := milestones.GetByID(context.Background(), 100); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("milestone still present after delete")
	}
	if err := svc.Delete(context.Background(), 100); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}
