package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/model"
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/repository"
)

// In-memory fakes for the store interfaces. Maps are keyed by ID; lists
// return in insertion order where it matters.

type fakeProjects struct {
	projects map[int64]*model.Project
	members  map[int64][]model.ProjectMember
}

func newFakeProjects(projects ...*model.Project) *fakeProjects {
	m := make(map[int64]*model.Project, len(projects))
	for _, p := range projects {
		m[p.ID] = p
	}
	return &fakeProjects{projects: m, members: make(map[int64][]model.ProjectMember)}
}

func (f *fakeProjects) GetByID(_ context.Context, id int64) (*model.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProjects) List(_ context.Context) ([]model.Project, error) {
	out := make([]model.Project, 0, len(f.projects))
	for _, p := range f.projects {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProjects) ListMembers(_ context.Context, projectID int64) ([]model.ProjectMember, error) {
	return f.members[projectID], nil
}

func (f *fakeProjects) UpdateFinancialConfig(_ context.Context, id int64, patch repository.FinancialConfigPatch) (*model.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if patch.FeePercent != nil {
		p.FeePercent = patch.FeePercent
	}
	if patch.WorkingBudget != nil {
		p.WorkingBudget = patch.WorkingBudget
	}
	if patch.ExchangeRate != nil {
		p.ExchangeRate = patch.ExchangeRate
	}
	cp := *p
	return &cp, nil
}

type fakeClients struct {
	clients map[int64]*model.Client
}

func newFakeClients(clients ...*model.Client) *fakeClients {
	m := make(map[int64]*model.Client, len(clients))
	for _, c := range clients {
		m[c.ID] = c
	}
	return &fakeClients{clients: m}
}

func (f *fakeClients) GetByID(_ context.Context, id int64) (*model.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

func (f *fakeClients) List(_ context.Context) ([]model.Client, error) {
	out := make([]model.Client, 0, len(f.clients))
	for _, c := range f.clients {
		out = append(out, *c)
	}
	return out, nil
}

type fakeWorkers struct {
	workers map[int64]*model.Worker
	nextID  int64
}

func newFakeWorkers(workers ...*model.Worker) *fakeWorkers {
	m := make(map[int64]*model.Worker, len(workers))
	var maxID int64
	for _, w := range workers {
		m[w.ID] = w
		if w.ID > maxID {
			maxID = w.ID
		}
	}
	return &fakeWorkers{workers: m, nextID: maxID + 1}
}

func (f *fakeWorkers) Create(_ context.Context, w *model.Worker) error {
	w.ID = f.nextID
	f.nextID++
	f.workers[w.ID] = w
	return nil
}

func (f *fakeWorkers) GetByID(_ context.Context, id int64) (*model.Worker, error) {
	w, ok := f.workers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return w, nil
}

func (f *fakeWorkers) FindByEmail(_ context.Context, email string) (*model.Worker, error) {
	for _, w := range f.workers {
		if w.Email == email {
			return w, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeWorkers) List(_ context.Context) ([]model.Worker, error) {
	out := make([]model.Worker, 0, len(f.workers))
	for _, w := range f.workers {
		out = append(out, *w)
	}
	return out, nil
}

type fakeTasks struct {
	byProject map[int64][]model.Task
}

func (f *fakeTasks) ListByProject(_ context.Context, projectID int64) ([]model.Task, error) {
	return f.byProject[projectID], nil
}

type fakeTimeEntries struct {
	byProject map[int64][]model.TimeEntry
	byWorker  map[int64][]model.TimeEntry
	taskMap   map[int64]int64
}

func (f *fakeTimeEntries) ListByProject(_ context.Context, projectID int64) ([]model.TimeEntry, error) {
	return f.byProject[projectID], nil
}

func (f *fakeTimeEntries) ListByWorker(_ context.Context, workerID int64) ([]model.TimeEntry, error) {
	return f.byWorker[workerID], nil
}

func (f *fakeTimeEntries) ListStartedBetween(_ context.Context, from, to time.Time) ([]model.TimeEntry, error) {
	var out []model.TimeEntry
	for _, entries := range f.byProject {
		for _, e := range entries {
			if !e.StartTime.Before(from) && e.StartTime.Before(to) {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

func (f *fakeTimeEntries) TaskProjects(_ context.Context) (map[int64]int64, error) {
	return f.taskMap, nil
}

type fakeMilestones struct {
	milestones map[int64]*model.Milestone
	nextID     int64
	updates    int
}

func newFakeMilestones(milestones ...*model.Milestone) *fakeMilestones {
	m := make(map[int64]*model.Milestone, len(milestones))
	var maxID int64
	for _, ms := range milestones {
		m[ms.ID] = ms
		if ms.ID > maxID {
			maxID = ms.ID
		}
	}
	return &fakeMilestones{milestones: m, nextID: maxID + 1}
}

func (f *fakeMilestones) Insert(_ context.Context, m *model.Milestone) error {
	m.ID = f.nextID
	f.nextID++
	cp := *m
	f.milestones[m.ID] = &cp
	return nil
}

func (f *fakeMilestones) GetByID(_ context.Context, id int64) (*model.Milestone, error) {
	m, ok := f.milestones[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMilestones) Update(_ context.Context, m *model.Milestone) error {
	if _, ok := f.milestones[m.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *m
	f.milestones[m.ID] = &cp
	f.updates++
	return nil
}

func (f *fakeMilestones) Delete(_ context.Context, id int64) error {
	if _, ok := f.milestones[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.milestones, id)
	return nil
}

func (f *fakeMilestones) List(_ context.Context) ([]model.Milestone, error) {
	out := make([]model.Milestone, 0, len(f.milestones))
	for _, m := range f.milestones {
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeMilestones) ListByProject(_ context.Context, projectID int64) ([]model.Milestone, error) {
	var out []model.Milestone
	for _, m := range f.milestones {
		if m.ProjectID == projectID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeMilestones) ListReleasedBetween(_ context.Context, from, to time.Time) ([]model.Milestone, error) {
	var out []model.Milestone
	for _, m := range f.milestones {
		if m.ReleasedAt == nil {
			continue
		}
		if !m.ReleasedAt.Before(from) && m.ReleasedAt.Before(to) {
			out = append(out, *m)
		}
	}
	return out, nil
}

type fakeLedger struct {
	records []*model.LedgerTransaction
	calls   int
	err     error
}

func (f *fakeLedger) Record(_ context.Context, tx *model.LedgerTransaction) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, tx)
	return nil
}

type fakePublisher struct {
	published []struct {
		routingKey string
		payload    any
	}
	err error
}

func (f *fakePublisher) Publish(routingKey string, payload any) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, struct {
		routingKey string
		payload    any
	}{routingKey, payload})
	return nil
}

var errLedgerDown = errors.New("ledger unavailable")

type fakeCache struct {
	store         map[string][]byte
	hits          int
	misses        int
	sets          int
	invalidations int
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string][]byte{}}
}

func (f *fakeCache) Get(_ context.Context, key string, dest any) bool {
	raw, ok := f.store[key]
	if !ok {
		f.misses++
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		f.misses++
		return false
	}
	f.hits++
	return true
}

func (f *fakeCache) Set(_ context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	f.store[key] = raw
	f.sets++
}

func (f *fakeCache) Invalidate(_ context.Context, keys ...string) {
	for _, k := range keys {
		delete(f.store, k)
	}
	f.invalidations++
}
