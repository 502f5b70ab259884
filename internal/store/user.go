package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/geotask-api/internal/domain"
)

// UserStore defines the interface for user account persistence.
type UserStore interface {
	// Create saves a new user to the store.
	// It handles domain validation and password hashing internally.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by email, compared case-insensitively.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update writes every field of an existing user. The caller provides the
	// complete user including HashedPassword; a non-empty plaintext Password
	// is hashed and replaces it.
	// Returns ErrUserNotFound if the user does not exist and ErrEmailExists
	// if the new email is taken.
	Update(ctx context.Context, user *domain.User) error

	// ListActive returns active users ordered by creation time, or an empty slice.
	ListActive(ctx context.Context) ([]*domain.User, error)
}
