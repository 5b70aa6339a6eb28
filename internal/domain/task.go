package domain

import (
	"errors"
	"time"
)

// Task validation errors
var (
	ErrEmptyTitle  = errors.New("title cannot be empty")
	ErrEmptyStatus = errors.New("status cannot be empty")
)

// Well-known task statuses. The status column is free-form and callers may
// supply other values, but these two drive the filtered list endpoints
// and the completion flow.
const (
	TaskStatusPending   = "pending"
	TaskStatusCompleted = "completed"
)

// Task is a unit of work that can be assigned to any number of users.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	AssignedTo  []*User   `json:"assignedTo"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTask creates a new Task draft with no assignees. The ID and timestamps
// are assigned by the store on insert. Returns an error if validation fails.
func NewTask(title, description, status string) (*Task, error) {
	task := &Task{
		Title:       title,
		Description: description,
		Status:      status,
		AssignedTo:  []*User{},
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.Title == "" {
		return ErrEmptyTitle
	}

	if t.Status == "" {
		return ErrEmptyStatus
	}

	return nil
}

// IsCompleted reports whether the task carries the completed status.
func (t *Task) IsCompleted() bool {
	return t.Status == TaskStatusCompleted
}

// MarkComplete sets the status to completed. Completing an already-completed
// task is a no-op, which keeps the operation idempotent.
func (t *Task) MarkComplete() {
	t.Status = TaskStatusCompleted
}

// AssigneeIDs returns the ids of the users currently assigned to the task.
func (t *Task) AssigneeIDs() []int64 {
	ids := make([]int64, 0, len(t.AssignedTo))
	for _, u := range t.AssignedTo {
		ids = append(ids, u.ID)
	}
	return ids
}
