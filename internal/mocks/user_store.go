package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/geotask-api/internal/domain"
	"github.com/phrazzld/geotask-api/internal/store"
)

// MockUserStore implements store.UserStore for testing. Without Fn
// overrides it keeps users in memory keyed by lower-cased email and stores
// the plaintext password as the hash.
type MockUserStore struct {
	CreateFn     func(ctx context.Context, user *domain.User) error
	GetByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateFn     func(ctx context.Context, user *domain.User) error
	ListActiveFn func(ctx context.Context) ([]*domain.User, error)

	mu    sync.Mutex
	Users map[string]*domain.User
}

var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{Users: make(map[string]*domain.User)}
}

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	email := strings.ToLower(user.Email)
	if _, exists := m.Users[email]; exists {
		return store.ErrEmailExists
	}
	user.Email = email
	user.HashedPassword = user.Password
	user.Password = ""
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt

	stored := *user
	m.Users[email] = &stored
	return nil
}

// GetByID implements the UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.Users {
		if u.ID == id {
			found := *u
			return &found, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// GetByEmail implements the UserStore interface
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.Users[strings.ToLower(email)]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	found := *u
	return &found, nil
}

// Update implements the UserStore interface
func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	email := strings.ToLower(user.Email)
	var oldKey string
	for key, u := range m.Users {
		if u.ID == user.ID {
			oldKey = key
		} else if key == email {
			return store.ErrEmailExists
		}
	}
	if oldKey == "" {
		return store.ErrUserNotFound
	}

	user.Email = email
	if user.Password != "" {
		user.HashedPassword = user.Password
		user.Password = ""
	}
	user.UpdatedAt = time.Now().UTC()

	delete(m.Users, oldKey)
	stored := *user
	m.Users[email] = &stored
	return nil
}

// ListActive implements the UserStore interface
func (m *MockUserStore) ListActive(ctx context.Context) ([]*domain.User, error) {
	if m.ListActiveFn != nil {
		return m.ListActiveFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	users := []*domain.User{}
	for _, u := range m.Users {
		if u.Active {
			found := *u
			users = append(users, &found)
		}
	}
	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.Before(users[j].CreatedAt)
		}
		return users[i].ID.String() < users[j].ID.String()
	})
	return users, nil
}
