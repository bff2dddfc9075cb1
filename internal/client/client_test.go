package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
	"todoTracker/internal/handlers/dto"
	"todoTracker/internal/models/todo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateHome уводит домашний каталог во временную папку,
// чтобы тесты не трогали реальный ~/.todotracker
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TODOTRACKER_TOKEN", "")
	return home
}

func TestSession_Current_NotAuthenticated(t *testing.T) {
	isolateHome(t)

	session := NewSession()
	_, err := session.Current()
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestSession_Current_FromEnv(t *testing.T) {
	isolateHome(t)
	t.Setenv("TODOTRACKER_TOKEN", "Bearer env-token")

	session := NewSession()
	info, err := session.Current()
	require.NoError(t, err)

	// префикс Bearer срезается
	assert.Equal(t, "env-token", info.Token)
	assert.Equal(t, "env", info.Source)
}

func TestSession_SaveAndCurrent(t *testing.T) {
	home := isolateHome(t)

	session := NewSession()
	err := session.Save(&TokenInfo{Token: "file-token"})
	require.NoError(t, err)

	// файл лежит в ~/.todotracker/credentials.json
	_, err = os.Stat(filepath.Join(home, ".todotracker", "credentials.json"))
	require.NoError(t, err)

	info, err := session.Current()
	require.NoError(t, err)
	assert.Equal(t, "file-token", info.Token)
	assert.Equal(t, "file", info.Source)
	assert.False(t, info.CreatedAt.IsZero())
}

func TestSession_Current_EnvOverridesFile(t *testing.T) {
	isolateHome(t)

	session := NewSession()
	require.NoError(t, session.Save(&TokenInfo{Token: "file-token"}))

	t.Setenv("TODOTRACKER_TOKEN", "env-token")

	info, err := session.Current()
	require.NoError(t, err)
	assert.Equal(t, "env-token", info.Token)
	assert.Equal(t, "env", info.Source)
}

func TestSession_Current_Expired(t *testing.T) {
	isolateHome(t)

	expired := time.Now().Add(-time.Hour)
	session := NewSession()
	require.NoError(t, session.Save(&TokenInfo{Token: "stale", ExpiresAt: &expired}))

	_, err := session.Current()
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestSession_Token(t *testing.T) {
	isolateHome(t)
	t.Setenv("TODOTRACKER_TOKEN", "env-token")

	session := NewSession()
	tok, err := session.Token()
	require.NoError(t, err)
	assert.Equal(t, "env-token", tok.AccessToken)
	assert.Equal(t, "Bearer", tok.TokenType)
}

func TestTodoService_GetTodos(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/todos", r.URL.Path)

		json.NewEncoder(w).Encode([]dto.TodoResponse{
			{ID: "id-1", Title: "Buy milk", Status: "Active", Priority: "High"},
		})
	}))
	defer server.Close()

	isolateHome(t)
	t.Setenv("TODOTRACKER_TOKEN", "test-token")

	service := NewTodoService(server.URL, NewSession())
	todos, err := service.GetTodos(context.Background())
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "Buy milk", todos[0].Title)

	// токен уходит в заголовок каждого запроса
	assert.Equal(t, "Bearer test-token", gotAuth)
}

func TestTodoService_GetTodos_NoSession(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	isolateHome(t)

	service := NewTodoService(server.URL, NewSession())
	_, err := service.GetTodos(context.Background())

	// без сессии до сети не доходим
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Equal(t, 0, requests)
}

func TestTodoService_AddTodo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req dto.CreateTodoRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Buy milk", req.Title)

		json.NewEncoder(w).Encode(dto.TodoResponse{ID: "new-id", Title: req.Title})
	}))
	defer server.Close()

	isolateHome(t)
	t.Setenv("TODOTRACKER_TOKEN", "test-token")

	service := NewTodoService(server.URL, NewSession())
	created, err := service.AddTodo(context.Background(), dto.CreateTodoRequest{
		Title:    "Buy milk",
		Priority: todo.PriorityHigh,
		Status:   todo.StatusActive,
	})
	require.NoError(t, err)
	assert.Equal(t, "new-id", created.ID)
}

func TestTodoService_UpdateTodo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/todos/id-1", r.URL.Path)

		json.NewEncoder(w).Encode(dto.TodoResponse{ID: "id-1", Status: "Completed"})
	}))
	defer server.Close()

	isolateHome(t)
	t.Setenv("TODOTRACKER_TOKEN", "test-token")

	status := todo.StatusCompleted
	service := NewTodoService(server.URL, NewSession())
	updated, err := service.UpdateTodo(context.Background(), "id-1", dto.UpdateTodoRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, todo.StatusCompleted, updated.Status)
}

func TestTodoService_DeleteTodo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/todos/id-1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	isolateHome(t)
	t.Setenv("TODOTRACKER_TOKEN", "test-token")

	service := NewTodoService(server.URL, NewSession())
	err := service.DeleteTodo(context.Background(), "id-1")
	assert.NoError(t, err)
}

func TestTodoService_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"error": "Запись принадлежит другому пользователю"})
	}))
	defer server.Close()

	isolateHome(t)
	t.Setenv("TODOTRACKER_TOKEN", "test-token")

	service := NewTodoService(server.URL, NewSession())
	err := service.DeleteTodo(context.Background(), "id-1")

	require.Error(t, err)
	var apiErr *apiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Contains(t, apiErr.Message, "другому пользователю")
}
