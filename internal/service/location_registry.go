package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/geotask-api/internal/domain"
	"github.com/phrazzld/geotask-api/internal/domain/geo"
	"github.com/phrazzld/geotask-api/internal/platform/logger"
	"github.com/phrazzld/geotask-api/internal/store"
)

// LocationRegistry manages registered locations and answers which of them
// contain a point.
type LocationRegistry interface {
	// Register validates and stores a new location. The radius defaults to
	// domain.DefaultGeofenceRadius.
	Register(ctx context.Context, params domain.NewLocationParams) (*domain.Location, error)

	// Update applies patch to an existing location. Returns
	// store.ErrLocationNotFound for unknown ids.
	Update(ctx context.Context, id int64, patch domain.LocationPatch) (*domain.Location, error)

	// Delete reports whether a location was removed; unknown ids give false.
	Delete(ctx context.Context, id int64) (bool, error)

	// ListAll returns every location ordered by id.
	ListAll(ctx context.Context) ([]*domain.Location, error)

	// Containing returns every location whose geofence contains p.
	Containing(ctx context.Context, p geo.Point) ([]*domain.Location, error)
}

type locationRegistryImpl struct {
	locations store.LocationStore
	logger    *slog.Logger
}

// NewLocationRegistry creates a LocationRegistry backed by locations.
func NewLocationRegistry(locations store.LocationStore, l *slog.Logger) (LocationRegistry, error) {
	if locations == nil {
		return nil, domain.NewValidationError("locations", "cannot be nil", domain.ErrValidation)
	}
	if l == nil {
		l = slog.Default()
	}

	return &locationRegistryImpl{
		locations: locations,
		logger:    l.With(slog.String("component", "location_registry")),
	}, nil
}

// Register implements LocationRegistry.Register
func (r *locationRegistryImpl) Register(
	ctx context.Context,
	params domain.NewLocationParams,
) (*domain.Location, error) {
	log := logger.FromContextOrDefault(ctx, r.logger)

	loc, err := domain.NewLocation(params)
	if err != nil {
		log.Debug("rejected location", slog.String("error", err.Error()))
		return nil, err
	}

	if err := r.locations.Create(ctx, loc); err != nil {
		if domain.IsValidationError(err) {
			return nil, err
		}
		return nil, NewServiceError("register_location", "failed to save location", err)
	}

	return loc, nil
}

// Update implements LocationRegistry.Update
func (r *locationRegistryImpl) Update(
	ctx context.Context,
	id int64,
	patch domain.LocationPatch,
) (*domain.Location, error) {
	log := logger.FromContextOrDefault(ctx, r.logger)

	loc, err := r.locations.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, store.ErrLocationNotFound
		}
		return nil, NewServiceError("update_location", "failed to load location", err)
	}

	if err := loc.ApplyPatch(patch); err != nil {
		log.Debug("rejected location patch",
			slog.Int64("location_id", id),
			slog.String("error", err.Error()))
		return nil, err
	}

	if err := r.locations.Update(ctx, loc); err != nil {
		if store.IsNotFoundError(err) {
			return nil, store.ErrLocationNotFound
		}
		if domain.IsValidationError(err) {
			return nil, err
		}
		return nil, NewServiceError("update_location", "failed to save location", err)
	}

	return loc, nil
}

// Delete implements LocationRegistry.Delete
func (r *locationRegistryImpl) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := r.locations.Delete(ctx, id)
	if err != nil {
		return false, NewServiceError("delete_location", "failed to delete location", err)
	}
	return deleted, nil
}

// ListAll implements LocationRegistry.ListAll
func (r *locationRegistryImpl) ListAll(ctx context.Context) ([]*domain.Location, error) {
	locations, err := r.locations.List(ctx)
	if err != nil {
		return nil, NewServiceError("list_locations", "failed to list locations", err)
	}
	return locations, nil
}

// Containing implements LocationRegistry.Containing with a linear scan over
// every registered location. List is ordered by id, so the result is too.
func (r *locationRegistryImpl) Containing(ctx context.Context, p geo.Point) ([]*domain.Location, error) {
	log := logger.FromContextOrDefault(ctx, r.logger)

	if err := p.Validate(); err != nil {
		return nil, domain.NewValidationError("point", err.Error(), domain.ErrInvalidQuery)
	}

	all, err := r.locations.List(ctx)
	if err != nil {
		return nil, NewServiceError("containing", "failed to list locations", err)
	}

	matches := []*domain.Location{}
	for _, loc := range all {
		inside, err := loc.Contains(p)
		if err != nil {
			// Stored rows are validated on write; a bad one is skipped, not fatal.
			log.Warn("skipping location with invalid geometry",
				slog.Int64("location_id", loc.ID),
				slog.String("error", err.Error()))
			continue
		}
		if inside {
			matches = append(matches, loc)
		}
	}

	log.Debug("geofence scan finished",
		slog.Int("scanned", len(all)),
		slog.Int("matched", len(matches)))
	return matches, nil
}
