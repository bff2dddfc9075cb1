package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"todoTracker/internal/identity"
	"todoTracker/internal/logger"
	"todoTracker/internal/models/todo"
	rep "todoTracker/internal/repository"

	"go.uber.org/zap"
)

// здесь происходит проверка владения и ошибок бизнес-логики

type TodoService struct {
	repo rep.TodoRepository
}

func NewTodoService(repo rep.TodoRepository) TodoService {
	return TodoService{
		repo: repo,
	}
}

// List возвращает только записи, чей владелец равен проверенной идентичности.
func (s *TodoService) List(ctx context.Context, ident identity.Identity) ([]*todo.Todo, error) {
	todos, err := s.repo.ListByOwner(ctx, ident.Email)
	if err != nil {
		return nil, fmt.Errorf("получение записей: %w", err)
	}

	return todos, nil
}

// Create проставляет владельца и обе временные метки в момент обработки запроса.
func (s *TodoService) Create(ctx context.Context, ident identity.Identity, title, description string, status todo.Status, priority todo.Priority) (*todo.Todo, error) {
	if title == "" {
		return nil, NewValidationError("title", "не может быть пустым")
	}

	if !status.Valid() {
		status = todo.StatusActive
	}
	if !priority.Valid() {
		priority = todo.PriorityLow
	}

	now := time.Now()
	t := &todo.Todo{
		Title:       title,
		Description: description,
		Status:      status,
		Priority:    priority,
		UserID:      ident.UID,
		Email:       ident.Email,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("создание записи: %w", err)
	}

	logger.Info("Service: Запись создана",
		zap.String("todo_id", t.ID),
		zap.String("owner", ident.Email))
	return t, nil
}

// Update загружает запись и проверяет владельца до применения изменений.
func (s *TodoService) Update(ctx context.Context, ident identity.Identity, id string, options ...todo.TodoOption) (*todo.Todo, error) {
	t, err := s.getOwned(ctx, ident, id)
	if err != nil {
		return nil, err
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(t)
	}
	t.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, t); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, NewNotFound(id)
		}
		return nil, fmt.Errorf("обновление записи: %w", err)
	}

	return t, nil
}

// Delete проверяет владельца до удаления — обязательная проверка,
// а не опциональная оптимизация.
func (s *TodoService) Delete(ctx context.Context, ident identity.Identity, id string) error {
	if _, err := s.getOwned(ctx, ident, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return NewNotFound(id)
		}
		return fmt.Errorf("удаление записи: %w", err)
	}

	logger.Info("Service: Запись удалена",
		zap.String("todo_id", id),
		zap.String("owner", ident.Email))
	return nil
}

func (s *TodoService) getOwned(ctx context.Context, ident identity.Identity, id string) (*todo.Todo, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Запись не найдена", zap.String("target_id", id))
			return nil, NewNotFound(id)
		}
		return nil, fmt.Errorf("получение записи: %w", err)
	}

	if t.Email != ident.Email {
		logger.Warn("Service: Попытка доступа к чужой записи",
			zap.String("target_id", id),
			zap.String("caller", ident.Email))
		return nil, NewForbidden(id)
	}

	return t, nil
}
