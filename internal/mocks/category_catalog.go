package mocks

import (
	"context"

	"github.com/phrazzld/geotask-api/internal/domain"
	"github.com/phrazzld/geotask-api/internal/service"
)

// MockCategoryCatalog implements service.CategoryCatalog for testing
type MockCategoryCatalog struct {
	CreateFn  func(ctx context.Context, params domain.NewCategoryParams) (*domain.Category, error)
	UpdateFn  func(ctx context.Context, id int64, patch domain.CategoryPatch) (*domain.Category, error)
	DeleteFn  func(ctx context.Context, id int64) (bool, error)
	ListAllFn func(ctx context.Context) ([]*domain.Category, error)
}

var _ service.CategoryCatalog = (*MockCategoryCatalog)(nil)

// Create implements service.CategoryCatalog
func (m *MockCategoryCatalog) Create(ctx context.Context, params domain.NewCategoryParams) (*domain.Category, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, params)
	}
	return nil, nil
}

// Update implements service.CategoryCatalog
func (m *MockCategoryCatalog) Update(
	ctx context.Context,
	id int64,
	patch domain.CategoryPatch,
) (*domain.Category, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, patch)
	}
	return nil, nil
}

// Delete implements service.CategoryCatalog
func (m *MockCategoryCatalog) Delete(ctx context.Context, id int64) (bool, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return false, nil
}

// ListAll implements service.CategoryCatalog
func (m *MockCategoryCatalog) ListAll(ctx context.Context) ([]*domain.Category, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	return []*domain.Category{}, nil
}
