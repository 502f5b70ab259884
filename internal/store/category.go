package store

import (
	"context"

	"github.com/phrazzld/geotask-api/internal/domain"
)

// CategoryStore persists task categories.
type CategoryStore interface {
	// Create inserts the category and sets its ID.
	Create(ctx context.Context, category *domain.Category) error

	// GetByID returns ErrCategoryNotFound if the category does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Category, error)

	// Update writes every field of an existing category.
	// Returns ErrCategoryNotFound if the category does not exist.
	Update(ctx context.Context, category *domain.Category) error

	// Delete removes the category and reports whether a row was removed.
	Delete(ctx context.Context, id int64) (bool, error)

	// List returns every category ordered by ID, or an empty slice.
	List(ctx context.Context) ([]*domain.Category, error)
}
