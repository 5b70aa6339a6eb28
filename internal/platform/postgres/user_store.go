package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taskhq/taskhq-api/internal/domain"
	"github.com/taskhq/taskhq-api/internal/platform/logger"
	"github.com/taskhq/taskhq-api/internal/store"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, log *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: log.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// WithTx returns a new UserStore that runs against the given transaction.
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.UserStore.Create
// It saves a new user to the database, filling in the generated ID and timestamps.
// Returns store.ErrEmailExists if the email is already registered.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	if user.HashedPassword == "" {
		return domain.ErrEmptyHashedPassword
	}

	query := `
		INSERT INTO users (name, email, hashed_password, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		user.Name,
		user.Email,
		user.HashedPassword,
		user.Role,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("duplicate email during user creation",
				slog.String("email", user.Email))
			return fmt.Errorf("%w: %v", store.ErrEmailExists, err)
		}
		log.Error("failed to create user",
			slog.String("error", err.Error()))
		return store.NewStoreError("user", "create", "insert failed", MapError(err))
	}

	log.Info("user created successfully",
		slog.Int64("user_id", user.ID),
		slog.String("role", string(user.Role)))
	return nil
}

// GetByID implements store.UserStore.GetByID
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.getByColumn(ctx, "id", id)
}

// GetByEmail implements store.UserStore.GetByEmail
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getByColumn(ctx, "email", email)
}

// GetByName implements store.UserStore.GetByName
// Returns store.ErrUserNotFound if no user carries that name.
func (s *PostgresUserStore) GetByName(ctx context.Context, name string) (*domain.User, error) {
	return s.getByColumn(ctx, "name", name)
}

// getByColumn retrieves a single user by an exact match on the given column.
// The column name is always one of the fixed identifiers above, never caller input.
func (s *PostgresUserStore) getByColumn(ctx context.Context, column string, value any) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`
		SELECT id, name, email, hashed_password, role, created_at, updated_at
		FROM users
		WHERE %s = $1
	`, column)

	var user domain.User
	var role string

	err := s.db.QueryRowContext(ctx, query, value).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.HashedPassword,
		&role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.String("lookup", column))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user",
			slog.String("lookup", column),
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	user.Role = domain.Role(role)
	return &user, nil
}

// List implements store.UserStore.List
// It retrieves all users with their task associations loaded.
func (s *PostgresUserStore) List(ctx context.Context) ([]*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, email, hashed_password, role, created_at, updated_at
		FROM users
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query users", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer closeRows(rows, log)

	var users []*domain.User
	byID := make(map[int64]*domain.User)
	var ids []int64

	for rows.Next() {
		var user domain.User
		var role string

		err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.HashedPassword,
			&role,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan user row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}

		user.Role = domain.Role(role)
		user.Tasks = []*domain.Task{}
		users = append(users, &user)
		byID[user.ID] = &user
		ids = append(ids, user.ID)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning user rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	if users == nil {
		return []*domain.User{}, nil
	}

	if err := s.loadTasks(ctx, byID, ids); err != nil {
		return nil, err
	}

	return users, nil
}

// loadTasks attaches each user's assigned tasks in a single query.
func (s *PostgresUserStore) loadTasks(ctx context.Context, byID map[int64]*domain.User, ids []int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ta.user_id, t.id, t.title, t.description, t.status, t.created_at, t.updated_at
		FROM task_assignees ta
		JOIN tasks t ON t.id = ta.task_id
		WHERE ta.user_id = ANY($1)
		ORDER BY t.id
	`

	rows, err := s.db.QueryContext(ctx, query, ids)
	if err != nil {
		log.Error("failed to query user tasks", slog.String("error", err.Error()))
		return MapError(err)
	}
	defer closeRows(rows, log)

	for rows.Next() {
		var userID int64
		var task domain.Task

		err := rows.Scan(
			&userID,
			&task.ID,
			&task.Title,
			&task.Description,
			&task.Status,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan user task row", slog.String("error", err.Error()))
			return MapError(err)
		}

		if user, ok := byID[userID]; ok {
			user.Tasks = append(user.Tasks, &task)
		}
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning user task rows", slog.String("error", err.Error()))
		return MapError(err)
	}

	return nil
}

// Update implements store.UserStore.Update
// Every column is overwritten from the supplied user; updated_at refreshes.
// Returns store.ErrUserNotFound if the user does not exist and
// store.ErrEmailExists when the new email collides with another user.
func (s *PostgresUserStore) Update(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during update",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()))
		return err
	}

	query := `
		UPDATE users
		SET name = $1, email = $2, hashed_password = $3, role = $4, updated_at = now()
		WHERE id = $5
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		user.Name,
		user.Email,
		user.HashedPassword,
		user.Role,
		user.ID,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("duplicate email during user update",
				slog.Int64("user_id", user.ID))
			return fmt.Errorf("%w: %v", store.ErrEmailExists, err)
		}
		log.Error("failed to update user",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrUserNotFound); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("user not found for update", slog.Int64("user_id", user.ID))
			return err
		}
		log.Error("failed to get rows affected",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Info("user updated successfully", slog.Int64("user_id", user.ID))
	return nil
}

// Delete implements store.UserStore.Delete
// It clears the user's task assignments before deleting the user row so no
// dangling relation rows remain.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx, `DELETE FROM task_assignees WHERE user_id = $1`, id); err != nil {
		log.Error("failed to clear task assignments",
			slog.Int64("user_id", id),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete user",
			slog.Int64("user_id", id),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrUserNotFound); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("user not found for delete", slog.Int64("user_id", id))
			return err
		}
		log.Error("failed to get rows affected",
			slog.Int64("user_id", id),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Info("user deleted successfully", slog.Int64("user_id", id))
	return nil
}

// closeRows closes a result set, logging any error.
func closeRows(rows *sql.Rows, log *slog.Logger) {
	if err := rows.Close(); err != nil {
		log.Error("failed to close rows", slog.String("error", err.Error()))
	}
}
