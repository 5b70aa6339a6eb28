package api

import (
	"context"
	"net/http"

	"github.com/taskhq/taskhq-api/internal/api/shared"
	"github.com/taskhq/taskhq-api/internal/service"
)

// TaskHandler handles task-related API requests.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// Create handles the POST /task endpoint.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error")
		return
	}

	task, err := h.taskService.Create(r.Context(), req.Title, req.Description, req.Status)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, TaskResponse{
		Task:    task,
		Message: "Task created successfully",
	})
}

// MarkComplete handles the POST /task/{id}/complete endpoint.
// Completing an already-completed task succeeds with the same response.
func (h *TaskHandler) MarkComplete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.taskService.MarkComplete(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to mark task complete")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskResponse{
		Task:    task,
		Message: "Task marked as complete",
	})
}

// Assign handles the POST /task/assign endpoint.
func (h *TaskHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req AssignTaskRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error")
		return
	}

	task, err := h.taskService.Assign(r.Context(), req.TaskID, req.To)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to assign task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskResponse{
		Task:    task,
		Message: "Task assigned successfully",
	})
}

// FindAll handles the GET /task endpoint.
func (h *TaskHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	h.respondWithPage(w, r, h.taskService.FindAll)
}

// FindCompleted handles the GET /task/completed endpoint.
func (h *TaskHandler) FindCompleted(w http.ResponseWriter, r *http.Request) {
	h.respondWithPage(w, r, h.taskService.FindCompleted)
}

// FindPending handles the GET /task/pending endpoint.
func (h *TaskHandler) FindPending(w http.ResponseWriter, r *http.Request) {
	h.respondWithPage(w, r, h.taskService.FindPending)
}

// respondWithPage runs one of the paginated listing operations and writes the
// resulting page.
func (h *TaskHandler) respondWithPage(
	w http.ResponseWriter,
	r *http.Request,
	list func(ctx context.Context, page, limit int) (*service.TaskPage, error),
) {
	page, limit := getPagination(r)

	result, err := list(r.Context(), page, limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// FindOne handles the GET /task/{id} endpoint.
func (h *TaskHandler) FindOne(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.taskService.FindOne(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Update handles the PATCH /task/{id} endpoint. The update is wholesale:
// every field of the task is replaced with the request payload.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateTaskRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error")
		return
	}

	task, err := h.taskService.Update(r.Context(), id, service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		AssigneeIDs: req.AssigneeIDs,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, UpdateTaskResponse{
		ExistingTask: task,
		Message:      "Task updated successfully",
	})
}

// Delete handles the DELETE /task/{id} endpoint.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.taskService.Remove(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{
		Message: "Task Deleted Successfully",
	})
}
