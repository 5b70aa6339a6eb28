package api

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/taskhq/taskhq-api/internal/domain"
	"github.com/taskhq/taskhq-api/internal/service"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignUp(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	args := m.Called(ctx, name, email, password)
	user, _ := args.Get(0).(*domain.User)
	return user, args.String(1), args.Error(2)
}

func (m *MockAuthService) SignIn(ctx context.Context, email, password string) (*domain.User, string, error) {
	args := m.Called(ctx, email, password)
	user, _ := args.Get(0).(*domain.User)
	return user, args.String(1), args.Error(2)
}

func (m *MockAuthService) GetProfile(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

// MockTaskService is a mock implementation of service.TaskService.
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) Create(ctx context.Context, title, description, status string) (*domain.Task, error) {
	args := m.Called(ctx, title, description, status)
	task, _ := args.Get(0).(*domain.Task)
	return task, args.Error(1)
}

func (m *MockTaskService) MarkComplete(ctx context.Context, id int64) (*domain.Task, error) {
	args := m.Called(ctx, id)
	task, _ := args.Get(0).(*domain.Task)
	return task, args.Error(1)
}

func (m *MockTaskService) Assign(ctx context.Context, taskID, userID int64) (*domain.Task, error) {
	args := m.Called(ctx, taskID, userID)
	task, _ := args.Get(0).(*domain.Task)
	return task, args.Error(1)
}

func (m *MockTaskService) FindAll(ctx context.Context, page, limit int) (*service.TaskPage, error) {
	args := m.Called(ctx, page, limit)
	result, _ := args.Get(0).(*service.TaskPage)
	return result, args.Error(1)
}

func (m *MockTaskService) FindCompleted(ctx context.Context, page, limit int) (*service.TaskPage, error) {
	args := m.Called(ctx, page, limit)
	result, _ := args.Get(0).(*service.TaskPage)
	return result, args.Error(1)
}

func (m *MockTaskService) FindPending(ctx context.Context, page, limit int) (*service.TaskPage, error) {
	args := m.Called(ctx, page, limit)
	result, _ := args.Get(0).(*service.TaskPage)
	return result, args.Error(1)
}

func (m *MockTaskService) FindOne(ctx context.Context, id int64) (*domain.Task, error) {
	args := m.Called(ctx, id)
	task, _ := args.Get(0).(*domain.Task)
	return task, args.Error(1)
}

func (m *MockTaskService) Update(ctx context.Context, id int64, input service.UpdateTaskInput) (*domain.Task, error) {
	args := m.Called(ctx, id, input)
	task, _ := args.Get(0).(*domain.Task)
	return task, args.Error(1)
}

func (m *MockTaskService) Remove(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserService is a mock implementation of service.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) FindAll(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]*domain.User)
	return users, args.Error(1)
}

func (m *MockUserService) FindOne(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *MockUserService) FindByName(ctx context.Context, name string) (*domain.User, error) {
	args := m.Called(ctx, name)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *MockUserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, id int64, input service.UpdateUserInput) (*domain.User, error) {
	args := m.Called(ctx, id, input)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *MockUserService) Remove(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
