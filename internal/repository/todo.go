package repository

import (
	"context"
	"todoTracker/internal/models/todo"
)

// TodoRepository — доступ к плоской коллекции записей.
// Create записывает присвоенный хранилищем id обратно в структуру.
// ListByOwner выбирает записи по равенству email владельца,
// порядок — нативный для хранилища.
type TodoRepository interface {
	Create(ctx context.Context, t *todo.Todo) error
	GetByID(ctx context.Context, id string) (*todo.Todo, error)
	ListByOwner(ctx context.Context, email string) ([]*todo.Todo, error)
	Update(ctx context.Context, t *todo.Todo) error
	Delete(ctx context.Context, id string) error
	HealthCheck(ctx context.Context) error
}
