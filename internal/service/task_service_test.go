package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/taskhq/taskhq-api/internal/domain"
	"github.com/taskhq/taskhq-api/internal/store"
)

func TestTaskService_Create(t *testing.T) {
	t.Parallel()

	t.Run("defaults blank status to pending", func(t *testing.T) {
		t.Parallel()

		taskStore := new(MockTaskStore)
		taskStore.On("Create", mock.Anything, mock.MatchedBy(func(task *domain.Task) bool {
			return task.Status == domain.TaskStatusPending
		})).Return(nil)

		svc := NewTaskService(taskStore, new(MockUserStore), nil, slog.Default())

		task, err := svc.Create(context.Background(), "Write report", "desc", "")
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusPending, task.Status)
		taskStore.AssertExpectations(t)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		t.Parallel()

		taskStore := new(MockTaskStore)
		svc := NewTaskService(taskStore, new(MockUserStore), nil, slog.Default())

		_, err := svc.Create(context.Background(), "", "desc", "pending")
		assert.ErrorIs(t, err, domain.ErrValidation)
		taskStore.AssertNotCalled(t, "Create")
	})
}

func TestTaskService_MarkComplete(t *testing.T) {
	t.Parallel()

	t.Run("completes a pending task", func(t *testing.T) {
		t.Parallel()

		db, dbMock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		dbMock.ExpectBegin()
		dbMock.ExpectCommit()

		taskStore := new(MockTaskStore)
		taskStore.On("GetByID", mock.Anything, int64(1)).Return(&domain.Task{
			ID:     1,
			Title:  "Write report",
			Status: domain.TaskStatusPending,
		}, nil)
		taskStore.On("Update", mock.Anything, mock.MatchedBy(func(task *domain.Task) bool {
			return task.Status == domain.TaskStatusCompleted
		})).Return(nil)

		svc := NewTaskService(taskStore, new(MockUserStore), db, slog.Default())

		task, err := svc.MarkComplete(context.Background(), 1)
		require.NoError(t, err)
		assert.True(t, task.IsCompleted())
		assert.NoError(t, dbMock.ExpectationsWereMet())
		taskStore.AssertExpectations(t)
	})

	t.Run("is idempotent for a completed task", func(t *testing.T) {
		t.Parallel()

		db, dbMock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		dbMock.ExpectBegin()
		dbMock.ExpectCommit()

		taskStore := new(MockTaskStore)
		taskStore.On("GetByID", mock.Anything, int64(1)).Return(&domain.Task{
			ID:     1,
			Title:  "Write report",
			Status: domain.TaskStatusCompleted,
		}, nil)

		svc := NewTaskService(taskStore, new(MockUserStore), db, slog.Default())

		task, err := svc.MarkComplete(context.Background(), 1)
		require.NoError(t, err)
		assert.True(t, task.IsCompleted())
		taskStore.AssertNotCalled(t, "Update")
	})

	t.Run("surfaces missing task", func(t *testing.T) {
		t.Parallel()

		db, dbMock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		dbMock.ExpectBegin()
		dbMock.ExpectRollback()

		taskStore := new(MockTaskStore)
		taskStore.On("GetByID", mock.Anything, int64(99)).Return(nil, store.ErrTaskNotFound)

		svc := NewTaskService(taskStore, new(MockUserStore), db, slog.Default())

		_, err = svc.MarkComplete(context.Background(), 99)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestTaskService_Assign(t *testing.T) {
	t.Parallel()

	t.Run("assigns and returns the reloaded task", func(t *testing.T) {
		t.Parallel()

		taskStore := new(MockTaskStore)
		taskStore.On("AddAssignee", mock.Anything, int64(1), int64(7)).Return(nil)
		taskStore.On("GetByID", mock.Anything, int64(1)).Return(&domain.Task{
			ID:         1,
			Title:      "Write report",
			Status:     domain.TaskStatusPending,
			AssignedTo: []*domain.User{{ID: 7}},
		}, nil)

		svc := NewTaskService(taskStore, new(MockUserStore), nil, slog.Default())

		task, err := svc.Assign(context.Background(), 1, 7)
		require.NoError(t, err)
		assert.Equal(t, []int64{7}, task.AssigneeIDs())
	})

	t.Run("surfaces missing user", func(t *testing.T) {
		t.Parallel()

		taskStore := new(MockTaskStore)
		taskStore.On("AddAssignee", mock.Anything, int64(1), int64(99)).
			Return(store.ErrUserNotFound)

		svc := NewTaskService(taskStore, new(MockUserStore), nil, slog.Default())

		_, err := svc.Assign(context.Background(), 1, 99)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}

func TestNormalizePagination(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{name: "defaults for zero values", page: 0, limit: 0, wantPage: 1, wantLimit: 10},
		{name: "defaults for negatives", page: -1, limit: -5, wantPage: 1, wantLimit: 10},
		{name: "passes through in-range values", page: 3, limit: 25, wantPage: 3, wantLimit: 25},
		{name: "clamps limit to maximum", page: 1, limit: 500, wantPage: 1, wantLimit: 100},
		{name: "limit exactly at maximum", page: 1, limit: 100, wantPage: 1, wantLimit: 100},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			page, limit := NormalizePagination(tc.page, tc.limit)
			assert.Equal(t, tc.wantPage, page)
			assert.Equal(t, tc.wantLimit, limit)
		})
	}
}

func TestTaskService_FindAll_Pagination(t *testing.T) {
	t.Parallel()

	t.Run("computes last page as ceiling", func(t *testing.T) {
		t.Parallel()

		taskStore := new(MockTaskStore)
		taskStore.On("List", mock.Anything, store.TaskFilter{Status: "", Limit: 10, Offset: 10}).
			Return([]*domain.Task{{ID: 11}}, int64(25), nil)

		svc := NewTaskService(taskStore, new(MockUserStore), nil, slog.Default())

		page, err := svc.FindAll(context.Background(), 2, 10)
		require.NoError(t, err)

		assert.Equal(t, int64(25), page.Total)
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, int64(3), page.LastPage)
		assert.Len(t, page.Data, 1)
	})

	t.Run("clamps oversized limit before hitting the store", func(t *testing.T) {
		t.Parallel()

		taskStore := new(MockTaskStore)
		taskStore.On("List", mock.Anything, store.TaskFilter{Status: "", Limit: 100, Offset: 0}).
			Return([]*domain.Task{}, int64(0), nil)

		svc := NewTaskService(taskStore, new(MockUserStore), nil, slog.Default())

		page, err := svc.FindAll(context.Background(), 1, 1000)
		require.NoError(t, err)
		assert.Equal(t, int64(0), page.LastPage)
		taskStore.AssertExpectations(t)
	})
}

func TestTaskService_FilteredListings(t *testing.T) {
	t.Parallel()

	taskStore := new(MockTaskStore)
	taskStore.On("List", mock.Anything, store.TaskFilter{
		Status: domain.TaskStatusCompleted, Limit: 10, Offset: 0,
	}).Return([]*domain.Task{{ID: 1, Status: domain.TaskStatusCompleted}}, int64(1), nil)
	taskStore.On("List", mock.Anything, store.TaskFilter{
		Status: domain.TaskStatusPending, Limit: 10, Offset: 0,
	}).Return([]*domain.Task{{ID: 2, Status: domain.TaskStatusPending}}, int64(1), nil)

	svc := NewTaskService(taskStore, new(MockUserStore), nil, slog.Default())

	completed, err := svc.FindCompleted(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, completed.Data, 1)
	assert.Equal(t, domain.TaskStatusCompleted, completed.Data[0].Status)

	pending, err := svc.FindPending(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, pending.Data, 1)
	assert.Equal(t, domain.TaskStatusPending, pending.Data[0].Status)
}

func TestTaskService_Update(t *testing.T) {
	t.Parallel()

	t.Run("replaces fields and assignee set", func(t *testing.T) {
		t.Parallel()

		db, dbMock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		dbMock.ExpectBegin()
		dbMock.ExpectCommit()

		taskStore := new(MockTaskStore)
		userStore := new(MockUserStore)

		taskStore.On("GetByID", mock.Anything, int64(1)).Return(&domain.Task{
			ID:         1,
			Title:      "Old title",
			Status:     domain.TaskStatusPending,
			AssignedTo: []*domain.User{{ID: 3}},
		}, nil)
		userStore.On("GetByID", mock.Anything, int64(7)).Return(&domain.User{ID: 7}, nil)
		taskStore.On("Update", mock.Anything, mock.MatchedBy(func(task *domain.Task) bool {
			return task.Title == "New title" &&
				task.Status == domain.TaskStatusCompleted &&
				len(task.AssignedTo) == 1 &&
				task.AssignedTo[0].ID == 7
		})).Return(nil)

		svc := NewTaskService(taskStore, userStore, db, slog.Default())

		task, err := svc.Update(context.Background(), 1, UpdateTaskInput{
			Title:       "New title",
			Description: "updated",
			Status:      domain.TaskStatusCompleted,
			AssigneeIDs: []int64{7},
		})
		require.NoError(t, err)
		assert.Equal(t, "New title", task.Title)
		assert.NoError(t, dbMock.ExpectationsWereMet())
		taskStore.AssertExpectations(t)
	})

	t.Run("surfaces missing assignee user", func(t *testing.T) {
		t.Parallel()

		db, dbMock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		dbMock.ExpectBegin()
		dbMock.ExpectRollback()

		taskStore := new(MockTaskStore)
		userStore := new(MockUserStore)

		taskStore.On("GetByID", mock.Anything, int64(1)).Return(&domain.Task{
			ID:     1,
			Title:  "Old title",
			Status: domain.TaskStatusPending,
		}, nil)
		userStore.On("GetByID", mock.Anything, int64(99)).Return(nil, store.ErrUserNotFound)

		svc := NewTaskService(taskStore, userStore, db, slog.Default())

		_, err = svc.Update(context.Background(), 1, UpdateTaskInput{
			Title:       "New title",
			Status:      domain.TaskStatusPending,
			AssigneeIDs: []int64{99},
		})
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		taskStore.AssertNotCalled(t, "Update")
	})
}

func TestTaskService_Remove(t *testing.T) {
	t.Parallel()

	t.Run("deletes the task", func(t *testing.T) {
		t.Parallel()

		taskStore := new(MockTaskStore)
		taskStore.On("Delete", mock.Anything, int64(1)).Return(nil)

		svc := NewTaskService(taskStore, new(MockUserStore), nil, slog.Default())

		assert.NoError(t, svc.Remove(context.Background(), 1))
	})

	t.Run("surfaces missing task", func(t *testing.T) {
		t.Parallel()

		taskStore := new(MockTaskStore)
		taskStore.On("Delete", mock.Anything, int64(99)).Return(store.ErrTaskNotFound)

		svc := NewTaskService(taskStore, new(MockUserStore), nil, slog.Default())

		assert.ErrorIs(t, svc.Remove(context.Background(), 99), store.ErrTaskNotFound)
	})
}
