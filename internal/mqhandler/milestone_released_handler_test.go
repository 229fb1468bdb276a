package mqhandler

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/model"
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/mq"
)

type fakeLogStore struct {
	logs     []*model.NotificationLog
	failures int // first N inserts fail
	inserts  int
}

var errDBDown = errors.New("db down")

func (f *fakeLogStore) Insert(_ context.Context, log *model.NotificationLog) error {
	f.inserts++
	if f.inserts <= f.failures {
		return errDBDown
	}
	f.logs = append(f.logs, log)
	return nil
}

type fakeDeduper struct {
	held map[int64]bool
}

func newFakeDeduper() *fakeDeduper {
	return &fakeDeduper{held: make(map[int64]bool)}
}

func (f *fakeDeduper) AcquireOnce(_ context.Context, _ string, entityID int64) bool {
	if f.held[entityID] {
		return false
	}
	f.held[entityID] = true
	return true
}

func (f *fakeDeduper) Release(_ context.Context, _ string, entityID int64) {
	delete(f.held, entityID)
}

func releasedPayload(t *testing.T) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(mq.MilestoneReleasedPayload{
		MilestoneID:    100,
		ProjectID:      1,
		ProjectName:    "Dashboard",
		Title:          "Phase 1",
		Amount:         1000,
		Currency:       "USD",
		LedgerRecorded: true,
		ReleasedAt:     time.Date(2026, time.August, 20, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return raw
}

func TestHandleMilestoneReleased(t *testing.T) {
	store := &fakeLogStore{}
	h := NewMilestoneReleasedHandler(store, newFakeDeduper(), zap.NewNop())

	if err := h.HandleMilestoneReleased(context.Background(), releasedPayload(t)); err != nil {
		t.Fatalf("HandleMilestoneReleased() error = %v", err)
	}
	if len(store.logs) != 1 {
		t.Fatalf("logs written = %d, want 1", len(store.logs))
	}
	log := store.logs[0]
	if log.MilestoneID != 100 || log.ProjectID != 1 {
		t.Errorf("log = %+v", log)
	}
	if log.Message == "" {
		t.Error("log message is empty")
	}
}

func TestHandleMilestoneReleased_SkipsDuplicate(t *testing.T) {
	store := &fakeLogStore{}
	h := NewMilestoneReleasedHandler(store, newFakeDeduper(), zap.NewNop())

	payload := releasedPayload(t)
	for i := 0; i < 2; i++ {
		if err := h.HandleMilestoneReleased(context.Background(), payload); err != nil {
			t.Fatalf("delivery %d: error = %v", i, err)
		}
	}
	if len(store.logs) != 1 {
		t.Errorf("logs written = %d, want 1 (duplicate skipped)", len(store.logs))
	}
}

// A transient insert failure must return the dedup key, so the broker's
// redelivery writes the row instead of being dropped as a duplicate.
func TestHandleMilestoneReleased_InsertFailureRetriesOnRedelivery(t *testing.T) {
	store := &fakeLogStore{failures: 1}
	deduper := newFakeDeduper()
	h := NewMilestoneReleasedHandler(store, deduper, zap.NewNop())

	payload := releasedPayload(t)

	if err := h.HandleMilestoneReleased(context.Background(), payload); !errors.Is(err, errDBDown) {
		t.Fatalf("first delivery: error = %v, want errDBDown (nack for requeue)", err)
	}
	if deduper.held[100] {
		t.Fatal("dedup key still held after failed insert")
	}
	if len(store.logs) != 0 {
		t.Fatalf("logs written = %d after failure, want 0", len(store.logs))
	}

	if err := h.HandleMilestoneReleased(context.Background(), payload); err != nil {
		t.Fatalf("redelivery: error = %v", err)
	}
	if len(store.logs) != 1 {
		t.Errorf("logs written = %d after redelivery, want 1", len(store.logs))
	}
	if !deduper.held[100] {
		t.Error("dedup key not held after successful insert")
	}
}

func TestHandleMilestoneReleased_BadPayload(t *testing.T) {
	store := &fakeLogStore{}
	h := NewMilestoneReleasedHandler(store, newFakeDeduper(), zap.NewNop())

	if err := h.HandleMilestoneReleased(context.Background(), json.RawMessage(`{broken`)); err == nil {
		t.Fatal("error = nil, want unmarshal error")
	}
	if len(store.logs) != 0 {
		t.Errorf("logs written = %d, want 0", len(store.logs))
	}
}
