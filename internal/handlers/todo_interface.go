package handlers

import (
	"context"
	"todoTracker/internal/identity"
	"todoTracker/internal/models/todo"
)

type Service interface {
	List(ctx context.Context, ident identity.Identity) ([]*todo.Todo, error)
	Create(ctx context.Context, ident identity.Identity, title, description string, status todo.Status, priority todo.Priority) (*todo.Todo, error)
	Update(ctx context.Context, ident identity.Identity, id string, options ...todo.TodoOption) (*todo.Todo, error)
	Delete(ctx context.Context, ident identity.Identity, id string) error
}

// Pinger — проверка доступности активного хранилища для /health.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}
