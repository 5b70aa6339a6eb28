package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/taskhq/taskhq-api/internal/domain"
	"github.com/taskhq/taskhq-api/internal/service"
	"github.com/taskhq/taskhq-api/internal/store"
)

func TestUserHandler_FindAll(t *testing.T) {
	t.Parallel()

	userService := new(MockUserService)
	userService.On("FindAll", mock.Anything).Return([]*domain.User{testUser()}, nil)

	handler := NewUserHandler(userService)

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	rec := httptest.NewRecorder()

	handler.FindAll(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var users []*domain.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Name)
}

func TestUserHandler_FindOne(t *testing.T) {
	t.Parallel()

	t.Run("returns the user", func(t *testing.T) {
		t.Parallel()

		userService := new(MockUserService)
		userService.On("FindOne", mock.Anything, int64(42)).Return(testUser(), nil)

		handler := NewUserHandler(userService)

		req := withPathID(httptest.NewRequest(http.MethodGet, "/user/42", nil), "42")
		rec := httptest.NewRecorder()

		handler.FindOne(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var user domain.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
		assert.Equal(t, int64(42), user.ID)
	})

	t.Run("maps a missing user to not found", func(t *testing.T) {
		t.Parallel()

		userService := new(MockUserService)
		userService.On("FindOne", mock.Anything, int64(99)).Return(nil, store.ErrUserNotFound)

		handler := NewUserHandler(userService)

		req := withPathID(httptest.NewRequest(http.MethodGet, "/user/99", nil), "99")
		rec := httptest.NewRecorder()

		handler.FindOne(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "User not found")
	})
}

func TestUserHandler_Update(t *testing.T) {
	t.Parallel()

	t.Run("updates the user", func(t *testing.T) {
		t.Parallel()

		updated := testUser()
		updated.Role = domain.RoleAdmin

		userService := new(MockUserService)
		userService.On("Update", mock.Anything, int64(42), service.UpdateUserInput{
			Name:  "alice",
			Email: "alice@example.com",
			Role:  domain.RoleAdmin,
		}).Return(updated, nil)

		handler := NewUserHandler(userService)

		body := `{"name":"alice","email":"alice@example.com","role":"admin"}`
		req := withPathID(httptest.NewRequest(http.MethodPatch, "/user/42", strings.NewReader(body)), "42")
		rec := httptest.NewRecorder()

		handler.Update(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var user domain.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
		assert.Equal(t, domain.RoleAdmin, user.Role)
	})

	t.Run("rejects an unknown role before the service runs", func(t *testing.T) {
		t.Parallel()

		userService := new(MockUserService)
		handler := NewUserHandler(userService)

		body := `{"name":"alice","email":"alice@example.com","role":"superuser"}`
		req := withPathID(httptest.NewRequest(http.MethodPatch, "/user/42", strings.NewReader(body)), "42")
		rec := httptest.NewRecorder()

		handler.Update(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		userService.AssertNotCalled(t, "Update")
	})

	t.Run("maps an email collision to conflict", func(t *testing.T) {
		t.Parallel()

		userService := new(MockUserService)
		userService.On("Update", mock.Anything, int64(42), mock.Anything).
			Return(nil, store.ErrEmailExists)

		handler := NewUserHandler(userService)

		body := `{"name":"alice","email":"taken@example.com","role":"user"}`
		req := withPathID(httptest.NewRequest(http.MethodPatch, "/user/42", strings.NewReader(body)), "42")
		rec := httptest.NewRecorder()

		handler.Update(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestUserHandler_Delete(t *testing.T) {
	t.Parallel()

	t.Run("deletes the user", func(t *testing.T) {
		t.Parallel()

		userService := new(MockUserService)
		userService.On("Remove", mock.Anything, int64(42)).Return(nil)

		handler := NewUserHandler(userService)

		req := withPathID(httptest.NewRequest(http.MethodDelete, "/user/42", nil), "42")
		rec := httptest.NewRecorder()

		handler.Delete(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp MessageResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "User Deleted Successfully", resp.Message)
	})

	t.Run("maps a missing user to not found", func(t *testing.T) {
		t.Parallel()

		userService := new(MockUserService)
		userService.On("Remove", mock.Anything, int64(99)).Return(store.ErrUserNotFound)

		handler := NewUserHandler(userService)

		req := withPathID(httptest.NewRequest(http.MethodDelete, "/user/99", nil), "99")
		rec := httptest.NewRecorder()

		handler.Delete(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
