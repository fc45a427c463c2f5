package user

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the persistence contract for User aggregates.
type UserRepository interface {
	// FindByID retrieves a user by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail retrieves a user by email, or a not-found error.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Save persists a new user aggregate. Duplicate emails surface as a
	// conflict error.
	Save(ctx context.Context, u *User) error
}
