package firestore

import (
	"context"
	"fmt"
	"time"
	"todoTracker/internal/logger"
	"todoTracker/internal/models/todo"
	repo "todoTracker/internal/repository"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const collection = "todos"

// Storage — репозиторий поверх управляемого документного хранилища.
// Атомарность — только на уровне одного документа, транзакций нет.
type Storage struct {
	client *firestore.Client
}

func New(ctx context.Context, projectID, credentialsFile string) (*Storage, error) {
	opts := []option.ClientOption{}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		logger.Error("Repository: Ошибка создания клиента Firestore", err)
		return nil, fmt.Errorf("создание клиента firestore: %w", err)
	}

	logger.Info("Repository: Успешное подключение к Firestore",
		zap.String("project", projectID))
	return &Storage{client: client}, nil
}

func (s *Storage) Close() {
	s.client.Close()
	logger.Info("Repository: Закрытие клиента Firestore")
}

// HealthCheck — чтение одного документа вместо ping: у клиента Firestore
// нет отдельной проверки соединения.
func (s *Storage) HealthCheck(ctx context.Context) error {
	iter := s.client.Collection(collection).Limit(1).Documents(ctx)
	defer iter.Stop()

	if _, err := iter.Next(); err != nil && err != iterator.Done {
		logger.Error("Repository: Неудачная проверка хранилища", err)
		return fmt.Errorf("проверка хранилища: %w", err)
	}
	return nil
}

func (s *Storage) Create(ctx context.Context, todoToCreate *todo.Todo) error {
	start := time.Now()

	docRef, _, err := s.client.Collection(collection).Add(ctx, todoToCreate)
	if err != nil {
		logger.Error("Repository: Не удалось добавить запись", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("добавление записи: %w", err)
	}

	// id документа присваивает хранилище
	todoToCreate.ID = docRef.ID

	if time.Since(start) > time.Millisecond*200 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) GetByID(ctx context.Context, id string) (*todo.Todo, error) {
	start := time.Now()

	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить запись", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение записи: %w", err)
	}

	t := &todo.Todo{}
	if err := snap.DataTo(t); err != nil {
		logger.Error("Repository: Ошибка декодирования документа", err)
		return nil, fmt.Errorf("декодирование документа: %w", err)
	}
	t.ID = snap.Ref.ID

	if time.Since(start) > time.Millisecond*200 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return t, nil
}

// выборка по равенству email владельца, без OrderBy —
// порядок нативный для хранилища (композитного индекса нет)
func (s *Storage) ListByOwner(ctx context.Context, email string) ([]*todo.Todo, error) {
	start := time.Now()

	iter := s.client.Collection(collection).Where("email", "==", email).Documents(ctx)
	defer iter.Stop()

	todos := []*todo.Todo{}
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.Error("Repository: Не удалось получить записи", err, zap.Duration("ms", time.Since(start)))
			return nil, fmt.Errorf("получение записей: %w", err)
		}

		t := &todo.Todo{}
		if err := snap.DataTo(t); err != nil {
			logger.Warn("Repository: Ошибка декодирования документа", zap.Error(err))
			continue
		}
		t.ID = snap.Ref.ID
		todos = append(todos, t)
	}

	if time.Since(start) > time.Millisecond*500 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return todos, nil
}

func (s *Storage) Update(ctx context.Context, todoToUpdate *todo.Todo) error {
	start := time.Now()

	// полная перезапись документа, last write wins
	_, err := s.client.Collection(collection).Doc(todoToUpdate.ID).Set(ctx, todoToUpdate)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось обновить запись", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("обновление записи: %w", err)
	}

	if time.Since(start) > time.Millisecond*200 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, id string) error {
	start := time.Now()

	_, err := s.client.Collection(collection).Doc(id).Delete(ctx)
	if err != nil {
		logger.Error("Repository: Не удалось удалить запись", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("удаление записи: %w", err)
	}

	if time.Since(start) > time.Millisecond*200 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return nil
}
