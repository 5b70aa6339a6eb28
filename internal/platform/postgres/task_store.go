package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taskhq/taskhq-api/internal/domain"
	"github.com/taskhq/taskhq-api/internal/platform/logger"
	"github.com/taskhq/taskhq-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, log *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: log.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// WithTx returns a new TaskStore that runs against the given transaction.
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.TaskStore.Create
// It saves a new task to the database, filling in the generated ID and
// timestamps. The assignee set is not written by Create.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO tasks (title, description, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.Status,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		log.Error("failed to create task", slog.String("error", err.Error()))
		return store.NewStoreError("task", "create", "insert failed", MapError(err))
	}

	if task.AssignedTo == nil {
		task.AssignedTo = []*domain.User{}
	}

	log.Info("task created successfully",
		slog.Int64("task_id", task.ID),
		slog.String("status", task.Status))
	return nil
}

// GetByID implements store.TaskStore.GetByID
// The returned task carries its assignee set.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, description, status, created_at, updated_at
		FROM tasks
		WHERE id = $1
	`

	var task domain.Task
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.CreatedAt,
		&task.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	if err := s.loadAssignees(ctx, []*domain.Task{&task}); err != nil {
		return nil, err
	}

	return &task, nil
}

// List implements store.TaskStore.List
// It returns the requested page newest first and the total count of matching
// tasks ignoring pagination.
func (s *PostgresTaskStore) List(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	where := ""
	countArgs := []any{}
	pageArgs := []any{}
	if filter.Status != "" {
		where = "WHERE status = $1"
		countArgs = append(countArgs, filter.Status)
		pageArgs = append(pageArgs, filter.Status)
	}

	var total int64
	countQuery := strings.TrimSpace(fmt.Sprintf(`SELECT COUNT(*) FROM tasks %s`, where))
	if err := s.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		log.Error("failed to count tasks", slog.String("error", err.Error()))
		return nil, 0, MapError(err)
	}

	pageQuery := fmt.Sprintf(`
		SELECT id, title, description, status, created_at, updated_at
		FROM tasks
		%s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, where, len(pageArgs)+1, len(pageArgs)+2)
	pageArgs = append(pageArgs, limit, offset)

	rows, err := s.db.QueryContext(ctx, pageQuery, pageArgs...)
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", err.Error()))
		return nil, 0, MapError(err)
	}
	defer closeRows(rows, log)

	var tasks []*domain.Task
	for rows.Next() {
		var task domain.Task
		err := rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.Status,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, 0, MapError(err)
		}
		tasks = append(tasks, &task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning task rows", slog.String("error", err.Error()))
		return nil, 0, MapError(err)
	}

	if tasks == nil {
		tasks = []*domain.Task{}
	}

	if err := s.loadAssignees(ctx, tasks); err != nil {
		return nil, 0, err
	}

	log.Debug("listed tasks",
		slog.String("status", filter.Status),
		slog.Int("count", len(tasks)),
		slog.Int64("total", total))
	return tasks, total, nil
}

// loadAssignees attaches the assignee set of each task in a single query.
func (s *PostgresTaskStore) loadAssignees(ctx context.Context, tasks []*domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(tasks) == 0 {
		return nil
	}

	byID := make(map[int64]*domain.Task, len(tasks))
	ids := make([]int64, 0, len(tasks))
	for _, t := range tasks {
		t.AssignedTo = []*domain.User{}
		byID[t.ID] = t
		ids = append(ids, t.ID)
	}

	query := `
		SELECT ta.task_id, u.id, u.name, u.email, u.role, u.created_at, u.updated_at
		FROM task_assignees ta
		JOIN users u ON u.id = ta.user_id
		WHERE ta.task_id = ANY($1)
		ORDER BY u.id
	`

	rows, err := s.db.QueryContext(ctx, query, ids)
	if err != nil {
		log.Error("failed to query task assignees", slog.String("error", err.Error()))
		return MapError(err)
	}
	defer closeRows(rows, log)

	for rows.Next() {
		var taskID int64
		var user domain.User
		var role string

		err := rows.Scan(
			&taskID,
			&user.ID,
			&user.Name,
			&user.Email,
			&role,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan assignee row", slog.String("error", err.Error()))
			return MapError(err)
		}

		user.Role = domain.Role(role)
		if task, ok := byID[taskID]; ok {
			task.AssignedTo = append(task.AssignedTo, &user)
		}
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning assignee rows", slog.String("error", err.Error()))
		return MapError(err)
	}

	return nil
}

// Update implements store.TaskStore.Update
// Title, description and status are overwritten wholesale and the assignee
// set is replaced with exactly task.AssignedTo. The updated_at column
// refreshes as part of the write.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.Int64("task_id", task.ID),
			slog.String("error", err.Error()))
		return err
	}

	query := `
		UPDATE tasks
		SET title = $1, description = $2, status = $3, updated_at = now()
		WHERE id = $4
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.Status,
		task.ID,
	).Scan(&task.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found for update", slog.Int64("task_id", task.ID))
			return store.ErrTaskNotFound
		}
		log.Error("failed to update task",
			slog.Int64("task_id", task.ID),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM task_assignees WHERE task_id = $1`, task.ID); err != nil {
		log.Error("failed to clear assignees",
			slog.Int64("task_id", task.ID),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	for _, user := range task.AssignedTo {
		insert := `
			INSERT INTO task_assignees (task_id, user_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`
		if _, err := s.db.ExecContext(ctx, insert, task.ID, user.ID); err != nil {
			if IsForeignKeyViolation(err) {
				log.Warn("assignee references missing user",
					slog.Int64("task_id", task.ID),
					slog.Int64("user_id", user.ID))
				return fmt.Errorf("%w: user with ID %d not found",
					store.ErrInvalidEntity, user.ID)
			}
			log.Error("failed to write assignee",
				slog.Int64("task_id", task.ID),
				slog.Int64("user_id", user.ID),
				slog.String("error", err.Error()))
			return MapError(err)
		}
	}

	log.Info("task updated successfully", slog.Int64("task_id", task.ID))
	return nil
}

// AddAssignee implements store.TaskStore.AddAssignee
// The insert is an atomic add-if-absent keyed on (task_id, user_id), so a
// duplicate assignment leaves a single membership row and concurrent
// assignments cannot lose each other.
func (s *PostgresTaskStore) AddAssignee(ctx context.Context, taskID, userID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO task_assignees (task_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (task_id, user_id) DO NOTHING
	`

	_, err := s.db.ExecContext(ctx, query, taskID, userID)
	if err != nil {
		if IsForeignKeyViolation(err) {
			constraint := ConstraintName(err)
			if strings.Contains(constraint, "user") {
				log.Debug("assignee user not found",
					slog.Int64("task_id", taskID),
					slog.Int64("user_id", userID))
				return fmt.Errorf("%w: %v", store.ErrUserNotFound, err)
			}
			log.Debug("task not found for assignment",
				slog.Int64("task_id", taskID),
				slog.Int64("user_id", userID))
			return fmt.Errorf("%w: %v", store.ErrTaskNotFound, err)
		}
		log.Error("failed to assign task",
			slog.Int64("task_id", taskID),
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Info("task assigned successfully",
		slog.Int64("task_id", taskID),
		slog.Int64("user_id", userID))
	return nil
}

// Delete implements store.TaskStore.Delete
// Assignment rows are removed by the schema's cascade rule.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			log.Debug("task not found for delete", slog.Int64("task_id", id))
			return err
		}
		log.Error("failed to get rows affected",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Info("task deleted successfully", slog.Int64("task_id", id))
	return nil
}
