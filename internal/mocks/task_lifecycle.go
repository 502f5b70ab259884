package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/phrazzld/geotask-api/internal/domain"
	"github.com/phrazzld/geotask-api/internal/service"
)

// MockTaskLifecycleManager implements service.TaskLifecycleManager for
// testing. Unset Fn fields return zero values.
type MockTaskLifecycleManager struct {
	CreateFn    func(ctx context.Context, caller domain.Identity, params service.CreateTaskParams) (*domain.Task, error)
	ListOwnedFn func(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error)
	GetByIDFn   func(ctx context.Context, id int64) (*domain.Task, error)
	UpdateFn    func(ctx context.Context, caller domain.Identity, id int64, patch domain.TaskPatch) (*domain.Task, error)
	CompleteFn  func(ctx context.Context, caller domain.Identity, id int64) (*domain.Task, error)
	DeleteFn    func(ctx context.Context, caller domain.Identity, id int64) (bool, error)
}

var _ service.TaskLifecycleManager = (*MockTaskLifecycleManager)(nil)

// Create implements service.TaskLifecycleManager
func (m *MockTaskLifecycleManager) Create(
	ctx context.Context,
	caller domain.Identity,
	params service.CreateTaskParams,
) (*domain.Task, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, caller, params)
	}
	return nil, nil
}

// ListOwned implements service.TaskLifecycleManager
func (m *MockTaskLifecycleManager) ListOwned(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error) {
	if m.ListOwnedFn != nil {
		return m.ListOwnedFn(ctx, ownerID)
	}
	return []*domain.Task{}, nil
}

// GetByID implements service.TaskLifecycleManager
func (m *MockTaskLifecycleManager) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, nil
}

// Update implements service.TaskLifecycleManager
func (m *MockTaskLifecycleManager) Update(
	ctx context.Context,
	caller domain.Identity,
	id int64,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, caller, id, patch)
	}
	return nil, nil
}

// Complete implements service.TaskLifecycleManager
func (m *MockTaskLifecycleManager) Complete(
	ctx context.Context,
	caller domain.Identity,
	id int64,
) (*domain.Task, error) {
	if m.CompleteFn != nil {
		return m.CompleteFn(ctx, caller, id)
	}
	return nil, nil
}

// Delete implements service.TaskLifecycleManager
func (m *MockTaskLifecycleManager) Delete(ctx context.Context, caller domain.Identity, id int64) (bool, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, caller, id)
	}
	return false, nil
}
