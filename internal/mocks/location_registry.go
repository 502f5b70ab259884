package mocks

import (
	"context"

	"github.com/phrazzld/geotask-api/internal/domain"
	"github.com/phrazzld/geotask-api/internal/domain/geo"
	"github.com/phrazzld/geotask-api/internal/service"
)

// MockLocationRegistry implements service.LocationRegistry for testing
type MockLocationRegistry struct {
	RegisterFn   func(ctx context.Context, params domain.NewLocationParams) (*domain.Location, error)
	UpdateFn     func(ctx context.Context, id int64, patch domain.LocationPatch) (*domain.Location, error)
	DeleteFn     func(ctx context.Context, id int64) (bool, error)
	ListAllFn    func(ctx context.Context) ([]*domain.Location, error)
	ContainingFn func(ctx context.Context, p geo.Point) ([]*domain.Location, error)
}

var _ service.LocationRegistry = (*MockLocationRegistry)(nil)

// Register implements service.LocationRegistry
func (m *MockLocationRegistry) Register(ctx context.Context, params domain.NewLocationParams) (*domain.Location, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, params)
	}
	return nil, nil
}

// Update implements service.LocationRegistry
func (m *MockLocationRegistry) Update(
	ctx context.Context,
	id int64,
	patch domain.LocationPatch,
) (*domain.Location, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, patch)
	}
	return nil, nil
}

// Delete implements service.LocationRegistry
func (m *MockLocationRegistry) Delete(ctx context.Context, id int64) (bool, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return false, nil
}

// ListAll implements service.LocationRegistry
func (m *MockLocationRegistry) ListAll(ctx context.Context) ([]*domain.Location, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	return []*domain.Location{}, nil
}

// Containing implements service.LocationRegistry
func (m *MockLocationRegistry) Containing(ctx context.Context, p geo.Point) ([]*domain.Location, error) {
	if m.ContainingFn != nil {
		return m.ContainingFn(ctx, p)
	}
	return []*domain.Location{}, nil
}
