package postgres

import (
	"context"
	"fmt"
	"os"
	"time"
	"todoTracker/internal/logger"
	"todoTracker/internal/models/todo"
	repo "todoTracker/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Storage — альтернативный self-hosted бэкенд; та же плоская коллекция
// записей с выборкой по равенству email.
type Storage struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, connString string) (*Storage, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		logger.Error("Repository: Ошибка загрузки конфига", err)
		return nil, fmt.Errorf("загрузка конфига: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnIdleTime = time.Minute * 5

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		logger.Error("Repository: Ошибка создания пула", err)
		return nil, fmt.Errorf("создание пула: %w", err)
	}

	err = pool.Ping(ctx)
	if err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return nil, fmt.Errorf("проверка соединения ping: %w", err)
	}

	logger.Info("Repository: Успешное создание подключения к PostgreSQL")
	return &Storage{pool: pool}, nil
}

func (s *Storage) Close() {
	s.pool.Close()
	logger.Info("Repository: Закрытие всех соединений PostgreSQL")
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	err := s.pool.Ping(ctx)
	if err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	return nil
}

func (s *Storage) Create(ctx context.Context, todoToCreate *todo.Todo) error {
	start := time.Now()

	// id присваивает хранилище
	todoToCreate.ID = uuid.New().String()

	query := `INSERT INTO todos
				(id, title, description, status, priority, user_id, email, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := s.pool.Exec(ctx, query,
		todoToCreate.ID,
		todoToCreate.Title,
		todoToCreate.Description,
		todoToCreate.Status,
		todoToCreate.Priority,
		todoToCreate.UserID,
		todoToCreate.Email,
		todoToCreate.CreatedAt,
		todoToCreate.UpdatedAt,
	)

	if err != nil {
		logger.Error("Repository: Не удалось добавить запись", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("добавление записи: %w", err)
	}

	if time.Since(start) > time.Millisecond*50 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) GetByID(ctx context.Context, id string) (*todo.Todo, error) {
	start := time.Now()

	query := `SELECT
				id,
				title,
				description,
				status,
				priority,
				user_id,
				email,
				created_at,
				updated_at
				FROM todos
				WHERE id = $1`

	t := &todo.Todo{}
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.Priority,
		&t.UserID,
		&t.Email,
		&t.CreatedAt,
		&t.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить запись", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение записи: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}

	return t, nil
}

// выборка по равенству email владельца, без ORDER BY
func (s *Storage) ListByOwner(ctx context.Context, email string) ([]*todo.Todo, error) {
	start := time.Now()

	query := `SELECT
				id,
				title,
				description,
				status,
				priority,
				user_id,
				email,
				created_at,
				updated_at
				FROM todos
				WHERE email = $1`

	rows, err := s.pool.Query(ctx, query, email)
	if err != nil {
		logger.Error("Repository: Не удалось получить записи", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение записей: %w", err)
	}

	defer rows.Close()

	todos := []*todo.Todo{}
	for rows.Next() {
		t := &todo.Todo{}

		err := rows.Scan(
			&t.ID,
			&t.Title,
			&t.Description,
			&t.Status,
			&t.Priority,
			&t.UserID,
			&t.Email,
			&t.CreatedAt,
			&t.UpdatedAt,
		)
		if err != nil {
			logger.Warn("Repository: Ошибка сканирования записи", zap.Error(err))
			continue
		}
		todos = append(todos, t)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}

	return todos, nil
}

func (s *Storage) Update(ctx context.Context, todoToUpdate *todo.Todo) error {
	start := time.Now()

	query := `UPDATE todos
			SET title = $1,
				description = $2,
				status = $3,
				priority = $4,
				updated_at = $5
			WHERE id = $6`

	tag, err := s.pool.Exec(ctx, query,
		todoToUpdate.Title,
		todoToUpdate.Description,
		todoToUpdate.Status,
		todoToUpdate.Priority,
		todoToUpdate.UpdatedAt,
		todoToUpdate.ID,
	)

	if err != nil {
		logger.Error("Repository: Не удалось обновить запись", err)
		return fmt.Errorf("обновление записи: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленная операция", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, id string) error {
	start := time.Now()

	query := `DELETE FROM todos
				WHERE id = $1`

	tag, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		logger.Error("Repository: Не удалось удалить запись", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("удаление записи: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленная операция", zap.Duration("ms", time.Since(start)))
	}

	return nil
}

func (s *Storage) Migrate(ctx context.Context) error {
	logger.Info("Попытка миграций")

	initUp, err := os.ReadFile("internal/migrations/001_init.up.sql")
	if err != nil {
		logger.Error("failed to read 001_init.up.sql", err)
		return err
	}

	_, err = s.pool.Exec(ctx, string(initUp))
	if err != nil {
		logger.Error("failed to apply 001_init", err)
		return err
	}

	logger.Info("Миграции применены")
	return nil
}

func (s *Storage) Down(ctx context.Context) error {
	logger.Info("Откат миграций")

	initDown, err := os.ReadFile("internal/migrations/001_init.down.sql")
	if err != nil {
		logger.Error("failed to read 001_init.down.sql", err)
		return err
	}

	_, err = s.pool.Exec(ctx, string(initDown))
	if err != nil {
		logger.Error("failed to rollback 001_init", err)
		return err
	}

	return nil
}
