package inmemory

import (
	"context"
	"sync"
	"todoTracker/internal/models/todo"
	repo "todoTracker/internal/repository"

	"github.com/google/uuid"
)

type TodoStorage struct {
	storage map[string]*todo.Todo
	mtx     *sync.RWMutex
	ids     []string
}

func NewTodoStorage() *TodoStorage {
	return &TodoStorage{
		storage: make(map[string]*todo.Todo),
		mtx:     &sync.RWMutex{},
		ids:     []string{},
	}
}

func (s *TodoStorage) HealthCheck(ctx context.Context) error {
	return nil
}

func (s *TodoStorage) Create(ctx context.Context, todoToCreate *todo.Todo) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	// id присваивает хранилище
	todoToCreate.ID = uuid.New().String()

	copied := *todoToCreate
	s.storage[copied.ID] = &copied
	s.ids = append(s.ids, copied.ID)
	return nil
}

func (s *TodoStorage) GetByID(ctx context.Context, id string) (*todo.Todo, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	stored, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}

	copied := *stored
	return &copied, nil
}

// выборка по равенству email владельца, порядок вставки
func (s *TodoStorage) ListByOwner(ctx context.Context, email string) ([]*todo.Todo, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*todo.Todo{}
	for _, id := range s.ids {
		stored, ok := s.storage[id]
		if !ok || stored.Email != email {
			continue
		}
		copied := *stored
		res = append(res, &copied)
	}

	return res, nil
}

func (s *TodoStorage) Update(ctx context.Context, todoToUpdate *todo.Todo) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[todoToUpdate.ID]; !ok {
		return repo.ErrNotFound
	}

	copied := *todoToUpdate
	s.storage[copied.ID] = &copied
	return nil
}

func (s *TodoStorage) Delete(ctx context.Context, id string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[id]; !ok {
		return repo.ErrNotFound
	}

	delete(s.storage, id)
	for ind, val := range s.ids {
		if val == id {
			s.ids = append(s.ids[:ind], s.ids[ind+1:]...)
			break
		}
	}
	return nil
}
