package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taskhq/taskhq-api/internal/domain"
	"github.com/taskhq/taskhq-api/internal/store"
)

// Pagination bounds for task listings.
const (
	// DefaultPage is used when the caller does not supply a page number.
	DefaultPage = 1

	// DefaultPageSize is used when the caller does not supply a limit.
	DefaultPageSize = 10

	// MaxPageSize caps the per-page limit. A larger requested limit is
	// clamped rather than rejected.
	MaxPageSize = 100
)

// TaskPage is one page of a task listing together with the bookkeeping the
// client needs to paginate further.
type TaskPage struct {
	Data     []*domain.Task `json:"data"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	LastPage int64          `json:"lastPage"`
}

// UpdateTaskInput carries the full replacement state for a task update.
// Every field is written; there are no partial updates.
type UpdateTaskInput struct {
	Title       string
	Description string
	Status      string
	AssigneeIDs []int64
}

// TaskService provides task lifecycle operations.
type TaskService interface {
	// Create creates a new task with no assignees.
	Create(ctx context.Context, title, description, status string) (*domain.Task, error)

	// MarkComplete sets the task's status to completed. Completing an
	// already-completed task succeeds without changing anything.
	// Returns store.ErrTaskNotFound if the task does not exist.
	MarkComplete(ctx context.Context, id int64) (*domain.Task, error)

	// Assign adds a user to the task's assignee set. Assigning a user who is
	// already assigned succeeds and leaves a single membership.
	// Returns store.ErrTaskNotFound or store.ErrUserNotFound when either
	// side of the assignment does not exist.
	Assign(ctx context.Context, taskID, userID int64) (*domain.Task, error)

	// FindAll retrieves one page of all tasks, newest first.
	FindAll(ctx context.Context, page, limit int) (*TaskPage, error)

	// FindCompleted retrieves one page of completed tasks, newest first.
	FindCompleted(ctx context.Context, page, limit int) (*TaskPage, error)

	// FindPending retrieves one page of pending tasks, newest first.
	FindPending(ctx context.Context, page, limit int) (*TaskPage, error)

	// FindOne retrieves a single task with its assignee set.
	// Returns store.ErrTaskNotFound if the task does not exist.
	FindOne(ctx context.Context, id int64) (*domain.Task, error)

	// Update replaces the task's title, description, status and assignee set.
	// Returns store.ErrTaskNotFound if the task does not exist and
	// store.ErrUserNotFound if an assignee references a missing user.
	Update(ctx context.Context, id int64, input UpdateTaskInput) (*domain.Task, error)

	// Remove deletes the task and its assignment rows.
	// Returns store.ErrTaskNotFound if the task does not exist.
	Remove(ctx context.Context, id int64) error
}

// TaskServiceImpl implements the TaskService interface.
type TaskServiceImpl struct {
	taskStore store.TaskStore
	userStore store.UserStore
	db        *sql.DB
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService.
func NewTaskService(
	taskStore store.TaskStore,
	userStore store.UserStore,
	db *sql.DB,
	logger *slog.Logger,
) TaskService {
	return &TaskServiceImpl{
		taskStore: taskStore,
		userStore: userStore,
		db:        db,
		logger:    logger.With("component", "task_service"),
	}
}

// Create creates a new task. A blank status defaults to pending.
func (s *TaskServiceImpl) Create(ctx context.Context, title, description, status string) (*domain.Task, error) {
	if status == "" {
		status = domain.TaskStatusPending
	}

	task, err := domain.NewTask(title, description, status)
	if err != nil {
		s.logger.Debug("invalid task input",
			"error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		s.logger.Error("failed to create task",
			"error", err)
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("task created",
		"task_id", task.ID,
		"status", task.Status)

	return task, nil
}

// MarkComplete sets the task's status to completed inside a transaction so a
// concurrent update cannot interleave between the read and the write.
func (s *TaskServiceImpl) MarkComplete(ctx context.Context, id int64) (*domain.Task, error) {
	var task *domain.Task

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.taskStore.WithTx(tx)

		var err error
		task, err = txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if task.IsCompleted() {
			// Idempotent: nothing to write.
			return nil
		}

		task.MarkComplete()
		return txStore.Update(ctx, task)
	})

	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			s.logger.Debug("attempted to complete missing task",
				"task_id", id)
			return nil, err
		}
		s.logger.Error("failed to mark task complete",
			"error", err,
			"task_id", id)
		return nil, fmt.Errorf("failed to mark task complete: %w", err)
	}

	s.logger.Info("task marked complete",
		"task_id", id)

	return task, nil
}

// Assign adds a user to the task's assignee set. The membership write is an
// atomic add-if-absent in the store, so two concurrent assignments of
// different users both survive.
func (s *TaskServiceImpl) Assign(ctx context.Context, taskID, userID int64) (*domain.Task, error) {
	if err := s.taskStore.AddAssignee(ctx, taskID, userID); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) || errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("assignment referenced a missing row",
				"error", err,
				"task_id", taskID,
				"user_id", userID)
			return nil, err
		}
		s.logger.Error("failed to assign task",
			"error", err,
			"task_id", taskID,
			"user_id", userID)
		return nil, fmt.Errorf("failed to assign task: %w", err)
	}

	task, err := s.taskStore.GetByID(ctx, taskID)
	if err != nil {
		s.logger.Error("failed to reload task after assignment",
			"error", err,
			"task_id", taskID)
		return nil, fmt.Errorf("failed to assign task: %w", err)
	}

	s.logger.Info("task assigned",
		"task_id", taskID,
		"user_id", userID)

	return task, nil
}

// FindAll retrieves one page of all tasks.
func (s *TaskServiceImpl) FindAll(ctx context.Context, page, limit int) (*TaskPage, error) {
	return s.findPage(ctx, "", page, limit)
}

// FindCompleted retrieves one page of completed tasks.
func (s *TaskServiceImpl) FindCompleted(ctx context.Context, page, limit int) (*TaskPage, error) {
	return s.findPage(ctx, domain.TaskStatusCompleted, page, limit)
}

// FindPending retrieves one page of pending tasks.
func (s *TaskServiceImpl) FindPending(ctx context.Context, page, limit int) (*TaskPage, error) {
	return s.findPage(ctx, domain.TaskStatusPending, page, limit)
}

// findPage normalizes the pagination inputs and runs the filtered listing.
func (s *TaskServiceImpl) findPage(ctx context.Context, status string, page, limit int) (*TaskPage, error) {
	page, limit = NormalizePagination(page, limit)

	tasks, total, err := s.taskStore.List(ctx, store.TaskFilter{
		Status: status,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		s.logger.Error("failed to list tasks",
			"error", err,
			"status", status)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return &TaskPage{
		Data:     tasks,
		Total:    total,
		Page:     page,
		LastPage: lastPage(total, limit),
	}, nil
}

// NormalizePagination applies the defaults and the maximum page size.
// A non-positive page becomes DefaultPage, a non-positive limit becomes
// DefaultPageSize, and a limit above MaxPageSize is clamped down to it.
func NormalizePagination(page, limit int) (int, int) {
	if page <= 0 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}

// lastPage is the ceiling of total/limit; an empty result set has no last page.
func lastPage(total int64, limit int) int64 {
	if total == 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}

// FindOne retrieves a single task with its assignee set.
func (s *TaskServiceImpl) FindOne(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			s.logger.Debug("task not found",
				"task_id", id)
			return nil, err
		}
		s.logger.Error("failed to retrieve task",
			"error", err,
			"task_id", id)
		return nil, fmt.Errorf("failed to retrieve task: %w", err)
	}

	return task, nil
}

// Update replaces the task's fields and assignee set inside a transaction.
func (s *TaskServiceImpl) Update(ctx context.Context, id int64, input UpdateTaskInput) (*domain.Task, error) {
	var task *domain.Task

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txTaskStore := s.taskStore.WithTx(tx)
		txUserStore := s.userStore.WithTx(tx)

		var err error
		task, err = txTaskStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		task.Title = input.Title
		task.Description = input.Description
		task.Status = input.Status

		assignees := make([]*domain.User, 0, len(input.AssigneeIDs))
		for _, userID := range input.AssigneeIDs {
			user, err := txUserStore.GetByID(ctx, userID)
			if err != nil {
				return err
			}
			assignees = append(assignees, user)
		}
		task.AssignedTo = assignees

		return txTaskStore.Update(ctx, task)
	})

	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) || errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("task update referenced a missing row",
				"error", err,
				"task_id", id)
			return nil, err
		}
		if errors.Is(err, domain.ErrEmptyTitle) || errors.Is(err, domain.ErrEmptyStatus) {
			s.logger.Debug("invalid task update input",
				"error", err,
				"task_id", id)
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		s.logger.Error("failed to update task",
			"error", err,
			"task_id", id)
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Info("task updated",
		"task_id", id)

	return task, nil
}

// Remove deletes the task.
func (s *TaskServiceImpl) Remove(ctx context.Context, id int64) error {
	if err := s.taskStore.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			s.logger.Debug("attempted to delete missing task",
				"task_id", id)
			return err
		}
		s.logger.Error("failed to delete task",
			"error", err,
			"task_id", id)
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.Info("task deleted",
		"task_id", id)

	return nil
}
