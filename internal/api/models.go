package api

import (
	"github.com/taskhq/taskhq-api/internal/domain"
	"github.com/taskhq/taskhq-api/internal/service"
)

// Common request/response structures

// SignUpRequest defines the payload for the user registration endpoint.
type SignUpRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// SignInRequest defines the payload for the login endpoint.
type SignInRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthUser is the client-facing view of a user in authentication responses.
type AuthUser struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Role        domain.Role `json:"role"`
	AccessToken string      `json:"accessToken"`
}

// SignUpResponse defines the successful response for the registration endpoint.
type SignUpResponse struct {
	Data    AuthUser `json:"data"`
	Message string   `json:"message"`
}

// ProfileResponse is the identity view returned by the profile endpoint. It
// reflects the verified token claims, not a fresh database read.
type ProfileResponse struct {
	ID       int64       `json:"id"`
	UserName string      `json:"userName"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"role"`
}

// CreateTaskRequest defines the payload for the task creation endpoint.
// A blank status defaults to pending.
type CreateTaskRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// AssignTaskRequest defines the payload for the task assignment endpoint.
// The assignee user ID travels under the "to" key.
type AssignTaskRequest struct {
	TaskID int64 `json:"taskId" validate:"required,gt=0"`
	To     int64 `json:"to"     validate:"required,gt=0"`
}

// UpdateTaskRequest defines the payload for the wholesale task update
// endpoint. Every field is written; omitting one clears it.
type UpdateTaskRequest struct {
	Title       string  `json:"title"       validate:"required"`
	Description string  `json:"description"`
	Status      string  `json:"status"      validate:"required"`
	AssigneeIDs []int64 `json:"assigneeIds" validate:"dive,gt=0"`
}

// TaskResponse pairs a task with an operation outcome message. The task
// fields are flattened into the top level of the payload.
type TaskResponse struct {
	*domain.Task
	Message string `json:"message"`
}

// UpdateTaskResponse is the payload for the wholesale task update endpoint;
// the updated record travels under the "existingTask" key.
type UpdateTaskResponse struct {
	ExistingTask *domain.Task `json:"existingTask"`
	Message      string       `json:"message"`
}

// MessageResponse carries a bare outcome message.
type MessageResponse struct {
	Message string `json:"message"`
}

// TaskPageResponse is the paginated task listing shape.
// It mirrors service.TaskPage; the alias keeps the transport surface
// decoupled from the service types it happens to match today.
type TaskPageResponse = service.TaskPage

// UpdateUserRequest defines the payload for the wholesale user update
// endpoint. A blank password keeps the current one.
type UpdateUserRequest struct {
	Name     string      `json:"name"     validate:"required"`
	Email    string      `json:"email"    validate:"required,email"`
	Role     domain.Role `json:"role"     validate:"required,oneof=user admin"`
	Password string      `json:"password" validate:"omitempty,min=8,max=72"`
}
