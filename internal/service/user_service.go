package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taskhq/taskhq-api/internal/domain"
	"github.com/taskhq/taskhq-api/internal/service/auth"
	"github.com/taskhq/taskhq-api/internal/store"
)

// UpdateUserInput carries the replacement state for a user update.
// A blank Password keeps the current hash; a non-blank one is re-hashed.
type UpdateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// UserService provides user management operations.
type UserService interface {
	// FindAll retrieves all users with their assigned tasks loaded.
	FindAll(ctx context.Context) ([]*domain.User, error)

	// FindOne retrieves a user by their ID.
	// Returns store.ErrUserNotFound if the user does not exist.
	FindOne(ctx context.Context, id int64) (*domain.User, error)

	// FindByName retrieves a user by their display name.
	// Returns store.ErrUserNotFound if no user carries that name.
	FindByName(ctx context.Context, name string) (*domain.User, error)

	// FindByEmail retrieves a user by their email address.
	// Returns store.ErrUserNotFound if the user does not exist.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update replaces the user's name, email and role, and re-hashes the
	// password when the input carries one.
	// Returns store.ErrUserNotFound if the user does not exist and
	// store.ErrEmailExists when the new email collides with another user.
	Update(ctx context.Context, id int64, input UpdateUserInput) (*domain.User, error)

	// Remove deletes the user and clears their task assignments.
	// Returns store.ErrUserNotFound if the user does not exist.
	Remove(ctx context.Context, id int64) error
}

// UserServiceImpl implements the UserService interface.
type UserServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	db        *sql.DB
	logger    *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	db *sql.DB,
	logger *slog.Logger,
) UserService {
	return &UserServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		db:        db,
		logger:    logger.With("component", "user_service"),
	}
}

// FindAll retrieves all users with their assigned tasks loaded.
func (s *UserServiceImpl) FindAll(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users",
			"error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// FindOne retrieves a user by their ID.
func (s *UserServiceImpl) FindOne(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("user not found",
				"user_id", id)
			return nil, err
		}
		s.logger.Error("failed to retrieve user",
			"error", err,
			"user_id", id)
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	return user, nil
}

// FindByName retrieves a user by their display name.
func (s *UserServiceImpl) FindByName(ctx context.Context, name string) (*domain.User, error) {
	user, err := s.userStore.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("user not found by name")
			return nil, err
		}
		s.logger.Error("failed to retrieve user by name",
			"error", err)
		return nil, fmt.Errorf("failed to retrieve user by name: %w", err)
	}

	return user, nil
}

// FindByEmail retrieves a user by their email address.
func (s *UserServiceImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("user not found by email")
			return nil, err
		}
		s.logger.Error("failed to retrieve user by email",
			"error", err)
		return nil, fmt.Errorf("failed to retrieve user by email: %w", err)
	}

	return user, nil
}

// Update replaces the user's details inside a transaction. The complete user
// row is read first and written back whole, so the stored hash survives when
// the input carries no password.
func (s *UserServiceImpl) Update(ctx context.Context, id int64, input UpdateUserInput) (*domain.User, error) {
	var user *domain.User

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		var err error
		user, err = txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		user.Name = input.Name
		user.Email = input.Email
		user.Role = input.Role

		if input.Password != "" {
			hashed, err := s.hasher.Hash(input.Password)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}
			user.HashedPassword = hashed
		}

		return txStore.Update(ctx, user)
	})

	if err != nil {
		switch {
		case errors.Is(err, store.ErrUserNotFound):
			s.logger.Debug("attempted to update missing user",
				"user_id", id)
			return nil, err
		case errors.Is(err, store.ErrEmailExists):
			s.logger.Debug("attempted to update to an existing email",
				"user_id", id)
			return nil, err
		case errors.Is(err, domain.ErrEmptyName),
			errors.Is(err, domain.ErrEmptyEmail),
			errors.Is(err, domain.ErrInvalidEmail),
			errors.Is(err, domain.ErrInvalidRole):
			s.logger.Debug("invalid user update input",
				"error", err,
				"user_id", id)
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		s.logger.Error("failed to update user",
			"error", err,
			"user_id", id)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("user updated",
		"user_id", id)

	return user, nil
}

// Remove deletes the user inside a transaction so the assignment cleanup and
// the row deletion land together.
func (s *UserServiceImpl) Remove(ctx context.Context, id int64) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)
		return txStore.Delete(ctx, id)
	})

	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("attempted to delete missing user",
				"user_id", id)
			return err
		}
		s.logger.Error("failed to delete user",
			"error", err,
			"user_id", id)
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("user deleted",
		"user_id", id)

	return nil
}
