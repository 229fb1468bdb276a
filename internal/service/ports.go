// Package service holds the application services: report composers over the
// finance engine, milestone and project-financial commands, and auth.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/model"
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/repository"
)

// ErrInvalidInput marks validation failures callers should treat as bad
// requests rather than server faults.
var ErrInvalidInput = errors.New("invalid input")

// Store interfaces are declared here, on the consuming side, so tests can
// substitute in-memory fakes. The pgx repositories satisfy them.

type ProjectStore interface {
	GetByID(ctx context.Context, id int64) (*model.Project, error)
	List(ctx context.Context) ([]model.Project, error)
	ListMembers(ctx context.Context, projectID int64) ([]model.ProjectMember, error)
	UpdateFinancialConfig(ctx context.Context, id int64, patch repository.FinancialConfigPatch) (*model.Project, error)
}

type ClientStore interface {
	GetByID(ctx context.Context, id int64) (*model.Client, error)
	List(ctx context.Context) ([]model.Client, error)
}

type WorkerStore interface {
	Create(ctx context.Context, w *model.Worker) error
	GetByID(ctx context.Context, id int64) (*model.Worker, error)
	FindByEmail(ctx context.Context, email string) (*model.Worker, error)
	List(ctx context.Context) ([]model.Worker, error)
}

type TaskStore interface {
	ListByProject(ctx context.Context, projectID int64) ([]model.Task, error)
}

type TimeEntryStore interface {
	ListByProject(ctx context.Context, projectID int64) ([]model.TimeEntry, error)
	ListByWorker(ctx context.Context, workerID int64) ([]model.TimeEntry, error)
	ListStartedBetween(ctx context.Context, from, to time.Time) ([]model.TimeEntry, error)
	TaskProjects(ctx context.Context) (map[int64]int64, error)
}

type MilestoneStore interface {
	Insert(ctx context.Context, m *model.Milestone) error
	GetByID(ctx context.Context, id int64) (*model.Milestone, error)
	Update(ctx context.Context, m *model.Milestone) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]model.Milestone, error)
	ListByProject(ctx context.Context, projectID int64) ([]model.Milestone, error)
	ListReleasedBetween(ctx context.Context, from, to time.Time) ([]model.Milestone, error)
}

// Cache stores assembled reports between requests. *ReportCache satisfies
// it; tests substitute an in-memory fake.
type Cache interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, v any)
	Invalidate(ctx context.Context, keys ...string)
}

// LedgerRecorder is the external accounting collaborator written to on
// milestone release. Calls are best-effort.
type LedgerRecorder interface {
	Record(ctx context.Context, tx *model.LedgerTransaction) error
}

// EventPublisher fans release events out to the rest of the system.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}
