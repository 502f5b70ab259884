package mocks

import (
	"context"

	"github.com/phrazzld/geotask-api/internal/domain"
	"github.com/phrazzld/geotask-api/internal/domain/geo"
	"github.com/phrazzld/geotask-api/internal/service"
)

// MockProximityMatcher implements service.ProximityMatcher for testing
type MockProximityMatcher struct {
	NearbyFn      func(ctx context.Context, latRaw, lonRaw string) ([]*domain.Task, error)
	NearbyPointFn func(ctx context.Context, p geo.Point) ([]*domain.Task, error)
}

var _ service.ProximityMatcher = (*MockProximityMatcher)(nil)

// Nearby implements service.ProximityMatcher
func (m *MockProximityMatcher) Nearby(ctx context.Context, latRaw, lonRaw string) ([]*domain.Task, error) {
	if m.NearbyFn != nil {
		return m.NearbyFn(ctx, latRaw, lonRaw)
	}
	return []*domain.Task{}, nil
}

// NearbyPoint implements service.ProximityMatcher
func (m *MockProximityMatcher) NearbyPoint(ctx context.Context, p geo.Point) ([]*domain.Task, error) {
	if m.NearbyPointFn != nil {
		return m.NearbyPointFn(ctx, p)
	}
	return []*domain.Task{}, nil
}
