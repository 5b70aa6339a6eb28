package store

import (
	"context"
	"database/sql"

	"github.com/taskhq/taskhq-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store and fills in the generated ID
	// and timestamps. The caller must have hashed the password already.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByName retrieves a user by their display name.
	// Returns ErrUserNotFound if no user carries that name.
	GetByName(ctx context.Context, name string) (*domain.User, error)

	// List retrieves all users with their task associations loaded.
	List(ctx context.Context) ([]*domain.User, error)

	// Update modifies an existing user's details. The caller MUST provide a
	// complete user object including HashedPassword; every column is
	// overwritten.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrEmailExists if updating to an email that already exists.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user from the store by their ID, clearing the user's
	// task assignments first so no dangling relation rows remain.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new UserStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) UserStore
}
