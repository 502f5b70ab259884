package store

import (
	"context"

	"github.com/phrazzld/geotask-api/internal/domain"
)

// LocationStore persists registered locations.
type LocationStore interface {
	// Create inserts the location and sets its ID.
	Create(ctx context.Context, loc *domain.Location) error

	// GetByID returns ErrLocationNotFound if the location does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Location, error)

	// Update writes every field of an existing location.
	// Returns ErrLocationNotFound if the location does not exist.
	Update(ctx context.Context, loc *domain.Location) error

	// Delete removes the location and reports whether a row was removed.
	// Tasks that reference the location are left untouched.
	Delete(ctx context.Context, id int64) (bool, error)

	// List returns every location ordered by ID, or an empty slice.
	List(ctx context.Context) ([]*domain.Location, error)

	// ListByIDs returns the locations among ids that still exist, ordered by ID.
	ListByIDs(ctx context.Context, ids []int64) ([]*domain.Location, error)
}
