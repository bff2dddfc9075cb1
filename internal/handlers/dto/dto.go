package dto

import (
	"time"
	"todoTracker/internal/models/todo"
)

type CreateTodoRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Priority    todo.Priority `json:"priority"`
	Status      todo.Status   `json:"status"`
}

type UpdateTodoRequest struct {
	Title       *string        `json:"title,omitempty"`
	Description *string        `json:"description,omitempty"`
	Status      *todo.Status   `json:"status,omitempty"`
	Priority    *todo.Priority `json:"priority,omitempty"`
}

// TodoResponse повторяет формат документа оригинального хранилища (camelCase).
type TodoResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	UserID      string    `json:"userId"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func FromTodo(t *todo.Todo) TodoResponse {
	return TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		UserID:      t.UserID,
		Email:       t.Email,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func FromTodoList(todos []*todo.Todo) []TodoResponse {
	result := make([]TodoResponse, len(todos))
	for i, t := range todos {
		result[i] = FromTodo(t)
	}
	return result
}
