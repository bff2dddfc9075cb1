package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"todoTracker/internal/handlers/dto"
	"todoTracker/internal/models/todo"

	"golang.org/x/oauth2"
)

// TodoService — клиентский сервис данных поверх HTTP API.
// Перед каждым исходящим вызовом синхронно получает текущую сессию
// и чеканит свежий токен; без сессии до сети не доходит.
type TodoService struct {
	baseURL string
	http    *http.Client
	tokens  oauth2.TokenSource
}

func NewTodoService(baseURL string, tokens oauth2.TokenSource) *TodoService {
	return &TodoService{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		tokens:  tokens,
	}
}

type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("сервер ответил %d: %s", e.Status, e.Message)
}

func (s *TodoService) GetTodos(ctx context.Context) ([]*todo.Todo, error) {
	var todos []*todo.Todo
	if err := s.call(ctx, http.MethodGet, "/api/todos", nil, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

func (s *TodoService) AddTodo(ctx context.Context, draft dto.CreateTodoRequest) (*todo.Todo, error) {
	created := &todo.Todo{}
	if err := s.call(ctx, http.MethodPost, "/api/todos", draft, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *TodoService) UpdateTodo(ctx context.Context, id string, patch dto.UpdateTodoRequest) (*todo.Todo, error) {
	updated := &todo.Todo{}
	if err := s.call(ctx, http.MethodPut, "/api/todos/"+id, patch, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *TodoService) DeleteTodo(ctx context.Context, id string) error {
	return s.call(ctx, http.MethodDelete, "/api/todos/"+id, nil, nil)
}

// call: свежий токен -> один запрос -> декодирование ответа.
// Ни кеширования, ни повторов.
func (s *TodoService) call(ctx context.Context, method, path string, body any, out any) error {
	tok, err := s.tokens.Token()
	if err != nil {
		return err
	}

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("кодирование тела: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("создание запроса: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("запрос %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := readErrorMessage(resp.Body)
		return &apiError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("декодирование ответа: %w", err)
	}
	return nil
}

func readErrorMessage(r io.Reader) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}
