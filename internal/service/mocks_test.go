package service

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/phrazzld/geotask-api/internal/domain"
	"github.com/phrazzld/geotask-api/internal/events"
	"github.com/phrazzld/geotask-api/internal/store"
)

// MockTaskStore mocks the store.TaskStore interface
type MockTaskStore struct {
	mock.Mock
}

func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskStore) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaskStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Task), args.Error(1)
}

func (m *MockTaskStore) ListByLocationIDs(ctx context.Context, ids []int64) ([]*domain.Task, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Task), args.Error(1)
}

// MockLocationStore mocks the store.LocationStore interface
type MockLocationStore struct {
	mock.Mock
}

func (m *MockLocationStore) Create(ctx context.Context, loc *domain.Location) error {
	args := m.Called(ctx, loc)
	return args.Error(0)
}

func (m *MockLocationStore) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Location), args.Error(1)
}

func (m *MockLocationStore) Update(ctx context.Context, loc *domain.Location) error {
	args := m.Called(ctx, loc)
	return args.Error(0)
}

func (m *MockLocationStore) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockLocationStore) List(ctx context.Context) ([]*domain.Location, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Location), args.Error(1)
}

func (m *MockLocationStore) ListByIDs(ctx context.Context, ids []int64) ([]*domain.Location, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Location), args.Error(1)
}

// MockEventEmitter mocks the events.EventEmitter interface
type MockEventEmitter struct {
	mock.Mock
}

func (m *MockEventEmitter) EmitEvent(ctx context.Context, event *events.TaskEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// memLocationStore is an in-memory store.LocationStore for behavioral tests.
type memLocationStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]domain.Location
}

func newMemLocationStore() *memLocationStore {
	return &memLocationStore{rows: make(map[int64]domain.Location)}
}

func (s *memLocationStore) Create(_ context.Context, loc *domain.Location) error {
	if err := loc.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	loc.ID = s.nextID
	s.rows[loc.ID] = *loc
	return nil
}

func (s *memLocationStore) GetByID(_ context.Context, id int64) (*domain.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	if !ok {
		return nil, store.ErrLocationNotFound
	}
	return &row, nil
}

func (s *memLocationStore) Update(_ context.Context, loc *domain.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[loc.ID]; !ok {
		return store.ErrLocationNotFound
	}
	s.rows[loc.ID] = *loc
	return nil
}

func (s *memLocationStore) Delete(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.rows[id]
	delete(s.rows, id)
	return ok, nil
}

func (s *memLocationStore) List(ctx context.Context) ([]*domain.Location, error) {
	return s.ListByIDs(ctx, nil)
}

func (s *memLocationStore) ListByIDs(_ context.Context, ids []int64) ([]*domain.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	want := make(map[int64]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := []*domain.Location{}
	for id, row := range s.rows {
		if ids == nil || want[id] {
			row := row
			out = append(out, &row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// memCategoryStore is an in-memory store.CategoryStore for behavioral tests.
type memCategoryStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]domain.Category
	err    error
}

func newMemCategoryStore() *memCategoryStore {
	return &memCategoryStore{rows: make(map[int64]domain.Category)}
}

func (s *memCategoryStore) Create(_ context.Context, c *domain.Category) error {
	if s.err != nil {
		return s.err
	}
	if err := c.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	c.ID = s.nextID
	s.rows[c.ID] = *c
	return nil
}

func (s *memCategoryStore) GetByID(_ context.Context, id int64) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	if !ok {
		return nil, store.ErrCategoryNotFound
	}
	return &row, nil
}

func (s *memCategoryStore) Update(_ context.Context, c *domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[c.ID]; !ok {
		return store.ErrCategoryNotFound
	}
	s.rows[c.ID] = *c
	return nil
}

func (s *memCategoryStore) Delete(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.rows[id]
	delete(s.rows, id)
	return ok, nil
}

func (s *memCategoryStore) List(_ context.Context) ([]*domain.Category, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*domain.Category{}
	for _, row := range s.rows {
		row := row
		out = append(out, &row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// memTaskStore is an in-memory store.TaskStore for behavioral tests.
type memTaskStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]domain.Task
}

func newMemTaskStore() *memTaskStore {
	return &memTaskStore{rows: make(map[int64]domain.Task)}
}

func (s *memTaskStore) Create(_ context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	task.ID = s.nextID
	row := *task
	row.Location = nil
	s.rows[task.ID] = row
	return nil
}

func (s *memTaskStore) GetByID(_ context.Context, id int64) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return &row, nil
}

func (s *memTaskStore) Update(_ context.Context, task *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.rows[task.ID]
	if !ok {
		return store.ErrTaskNotFound
	}
	row := *task
	row.Location = nil
	row.OwnerID = old.OwnerID
	row.CreatedAt = old.CreatedAt
	s.rows[task.ID] = row
	return nil
}

func (s *memTaskStore) Delete(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.rows[id]
	delete(s.rows, id)
	return ok, nil
}

func (s *memTaskStore) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*domain.Task, error) {
	return s.filter(func(t domain.Task) bool { return t.OwnerID == ownerID }), nil
}

func (s *memTaskStore) ListByLocationIDs(_ context.Context, ids []int64) ([]*domain.Task, error) {
	want := make(map[int64]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	return s.filter(func(t domain.Task) bool { return t.LocationID != nil && want[*t.LocationID] }), nil
}

func (s *memTaskStore) filter(keep func(domain.Task) bool) []*domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*domain.Task{}
	for _, row := range s.rows {
		if keep(row) {
			row := row
			out = append(out, &row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// recordingEmitter collects emitted events.
type recordingEmitter struct {
	mu     sync.Mutex
	events []*events.TaskEvent
}

func (e *recordingEmitter) EmitEvent(_ context.Context, event *events.TaskEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
	return nil
}

func (e *recordingEmitter) types() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, 0, len(e.events))
	for _, ev := range e.events {
		out = append(out, ev.Type)
	}
	return out
}
