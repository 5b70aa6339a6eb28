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

// AuthService provides registration, sign-in and profile retrieval.
type AuthService interface {
	// SignUp registers a new user with the default user role and issues an
	// access token for the fresh account.
	// Returns store.ErrEmailExists if the email is already registered.
	SignUp(ctx context.Context, name, email, password string) (*domain.User, string, error)

	// SignIn verifies the credentials and returns the user together with a
	// signed access token.
	// Returns auth.ErrInvalidCredentials for an unknown email or a wrong
	// password; the two cases are not distinguished.
	SignIn(ctx context.Context, email, password string) (*domain.User, string, error)

	// GetProfile retrieves the user a verified token belongs to.
	// Returns store.ErrUserNotFound if the user no longer exists.
	GetProfile(ctx context.Context, userID int64) (*domain.User, error)
}

// AuthServiceImpl implements the AuthService interface.
type AuthServiceImpl struct {
	userStore    store.UserStore
	hasher       auth.PasswordHasher
	tokenService auth.TokenService
	db           *sql.DB
	logger       *slog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	tokenService auth.TokenService,
	db *sql.DB,
	logger *slog.Logger,
) AuthService {
	return &AuthServiceImpl{
		userStore:    userStore,
		hasher:       hasher,
		tokenService: tokenService,
		db:           db,
		logger:       logger.With("component", "auth_service"),
	}
}

// SignUp registers a new user. The password is hashed before anything touches
// the database; the plaintext never leaves this method.
func (s *AuthServiceImpl) SignUp(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	user, err := domain.NewUser(name, email, password)
	if err != nil {
		s.logger.Debug("invalid sign-up input",
			"error", err,
			"email", email)
		return nil, "", fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Duplicate email check up front; the unique constraint catches the
	// concurrent case.
	if _, err := s.userStore.GetByEmail(ctx, email); err == nil {
		s.logger.Debug("attempted to sign up with existing email",
			"email", email)
		return nil, "", store.ErrEmailExists
	} else if !errors.Is(err, store.ErrUserNotFound) {
		s.logger.Error("failed to check email during sign-up",
			"error", err)
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("failed to hash password during sign-up",
			"error", err)
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)
		return txStore.Create(ctx, user)
	})

	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("attempted to sign up with existing email",
				"email", email)
			return nil, "", err
		}
		s.logger.Error("failed to save user during sign-up",
			"error", err,
			"email", email)
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokenService.GenerateToken(ctx, user)
	if err != nil {
		s.logger.Error("failed to generate token during sign-up",
			"error", err,
			"user_id", user.ID)
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user signed up successfully",
		"user_id", user.ID,
		"email", user.Email)

	return user, token, nil
}

// SignIn verifies the credentials and issues an access token carrying the
// user's identity and role.
func (s *AuthServiceImpl) SignIn(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("sign-in attempt with unknown email")
			return nil, "", auth.ErrInvalidCredentials
		}
		s.logger.Error("failed to look up user during sign-in",
			"error", err)
		return nil, "", fmt.Errorf("failed to sign in: %w", err)
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("sign-in attempt with wrong password",
			"user_id", user.ID)
		return nil, "", auth.ErrInvalidCredentials
	}

	token, err := s.tokenService.GenerateToken(ctx, user)
	if err != nil {
		s.logger.Error("failed to generate token during sign-in",
			"error", err,
			"user_id", user.ID)
		return nil, "", fmt.Errorf("failed to sign in: %w", err)
	}

	s.logger.Info("user signed in successfully",
		"user_id", user.ID)

	return user, token, nil
}

// GetProfile retrieves the user behind a verified token.
func (s *AuthServiceImpl) GetProfile(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("profile requested for missing user",
				"user_id", userID)
			return nil, err
		}
		s.logger.Error("failed to retrieve profile",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to retrieve profile: %w", err)
	}

	return user, nil
}
