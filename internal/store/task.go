package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/geotask-api/internal/domain"
)

// TaskStore persists tasks. Each call is atomic for a single row; concurrent
// updates of the same task are last-write-wins.
type TaskStore interface {
	// Create inserts the task and sets its ID.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID returns ErrTaskNotFound if the task does not exist.
	// The Location join is not populated.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// Update writes every mutable field of an already patched task.
	// OwnerID and CreatedAt are never changed.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes the task and reports whether a row was removed.
	Delete(ctx context.Context, id int64) (bool, error)

	// ListByOwner returns the tasks owned by ownerID ordered by ID.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error)

	// ListByLocationIDs returns every task bound to one of ids, regardless
	// of owner, ordered by ID.
	ListByLocationIDs(ctx context.Context, ids []int64) ([]*domain.Task, error)
}
