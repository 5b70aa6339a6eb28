package store

import (
	"context"
	"database/sql"

	"github.com/taskhq/taskhq-api/internal/domain"
)

// TaskFilter narrows and pages a task listing. A zero Status matches every
// task; Limit and Offset are applied after filtering.
type TaskFilter struct {
	Status string
	Limit  int
	Offset int
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store and fills in the generated ID
	// and timestamps. Assignees are not written by Create.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID with its assignee set loaded.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// List retrieves a page of tasks matching the filter, newest first,
	// along with the total count of matching tasks ignoring pagination.
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, int64, error)

	// Update overwrites the title, description and status of an existing task
	// and replaces its assignee set with exactly task.AssignedTo. The
	// updated_at column refreshes as part of the write.
	// Returns ErrTaskNotFound if the task does not exist.
	// Returns ErrInvalidEntity if an assignee references a missing user.
	Update(ctx context.Context, task *domain.Task) error

	// AddAssignee appends a user to the task's assignee set. The write is an
	// atomic add-if-absent: assigning the same user twice leaves a single
	// membership row and does not error.
	// Returns ErrTaskNotFound if the task does not exist and ErrUserNotFound
	// if the user does not exist.
	AddAssignee(ctx context.Context, taskID, userID int64) error

	// Delete removes a task from the store by its ID. Assignment rows are
	// removed by the schema's cascade rule.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
