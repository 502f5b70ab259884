package service

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/phrazzld/geotask-api/internal/domain"
	"github.com/phrazzld/geotask-api/internal/domain/geo"
	"github.com/phrazzld/geotask-api/internal/platform/logger"
	"github.com/phrazzld/geotask-api/internal/store"
)

// ProximityMatcher resolves the tasks bound to locations whose geofence
// contains a point. It needs no identity and does not filter by owner.
type ProximityMatcher interface {
	// Nearby parses raw query coordinates and delegates to NearbyPoint.
	// Missing, unparseable or out-of-range values yield domain.ErrInvalidQuery.
	Nearby(ctx context.Context, latRaw, lonRaw string) ([]*domain.Task, error)

	// NearbyPoint returns every task, of any owner, attached to a location
	// containing p, each enriched with that location.
	NearbyPoint(ctx context.Context, p geo.Point) ([]*domain.Task, error)
}

type proximityMatcherImpl struct {
	registry LocationRegistry
	tasks    store.TaskStore
	logger   *slog.Logger
}

// NewProximityMatcher creates a ProximityMatcher.
func NewProximityMatcher(
	registry LocationRegistry,
	tasks store.TaskStore,
	l *slog.Logger,
) (ProximityMatcher, error) {
	if registry == nil {
		return nil, domain.NewValidationError("registry", "cannot be nil", domain.ErrValidation)
	}
	if tasks == nil {
		return nil, domain.NewValidationError("tasks", "cannot be nil", domain.ErrValidation)
	}
	if l == nil {
		l = slog.Default()
	}

	return &proximityMatcherImpl{
		registry: registry,
		tasks:    tasks,
		logger:   l.With(slog.String("component", "proximity_matcher")),
	}, nil
}

// Nearby implements ProximityMatcher.Nearby
func (m *proximityMatcherImpl) Nearby(ctx context.Context, latRaw, lonRaw string) ([]*domain.Task, error) {
	lat, err := parseCoordinate("lat", latRaw)
	if err != nil {
		return nil, err
	}
	lon, err := parseCoordinate("lon", lonRaw)
	if err != nil {
		return nil, err
	}

	p, err := geo.NewPoint(lat, lon)
	if err != nil {
		return nil, domain.NewValidationError("coordinates", err.Error(), domain.ErrInvalidQuery)
	}

	return m.NearbyPoint(ctx, p)
}

// NearbyPoint implements ProximityMatcher.NearbyPoint
func (m *proximityMatcherImpl) NearbyPoint(ctx context.Context, p geo.Point) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, m.logger)

	locations, err := m.registry.Containing(ctx, p)
	if err != nil {
		return nil, err
	}
	if len(locations) == 0 {
		log.Debug("no geofence contains point", slog.String("point", p.String()))
		return []*domain.Task{}, nil
	}

	byID := make(map[int64]*domain.Location, len(locations))
	ids := make([]int64, 0, len(locations))
	for _, loc := range locations {
		byID[loc.ID] = loc
		ids = append(ids, loc.ID)
	}

	tasks, err := m.tasks.ListByLocationIDs(ctx, ids)
	if err != nil {
		return nil, NewServiceError("nearby", "failed to list tasks by location", err)
	}

	for _, task := range tasks {
		if task.LocationID != nil {
			task.Location = byID[*task.LocationID]
		}
	}

	log.Debug("nearby query matched",
		slog.String("point", p.String()),
		slog.Int("locations", len(locations)),
		slog.Int("tasks", len(tasks)))
	return tasks, nil
}

func parseCoordinate(field, raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, domain.NewValidationError(field, "is required", domain.ErrInvalidQuery)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, domain.NewValidationError(field, "must be a number", domain.ErrInvalidQuery)
	}
	return v, nil
}
