package main

import (
	"context"
	"net/http"
	"os"
	"time"
	"todoTracker/internal/config"
	"todoTracker/internal/handlers"
	"todoTracker/internal/identity"
	"todoTracker/internal/logger"
	"todoTracker/internal/middleware"
	"todoTracker/internal/repository"
	fsrepo "todoTracker/internal/repository/todo/firestore"
	"todoTracker/internal/repository/todo/inmemory"
	pgrepo "todoTracker/internal/repository/todo/postgres"
	"todoTracker/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(os.Getenv("TODOTRACKER_CONFIG"))
	if err != nil {
		panic(err)
	}

	logger.Init(cfg.Logging.Development)
	defer logger.Sync()

	ctx := context.Background()

	repo, cleanup, err := buildRepository(ctx, cfg)
	if err != nil {
		logger.Error("Не удалось создать репозиторий", err)
		os.Exit(1)
	}
	defer cleanup()

	verifier, err := buildVerifier(ctx, cfg)
	if err != nil {
		logger.Error("Не удалось создать verifier", err)
		os.Exit(1)
	}

	todoService := service.NewTodoService(repo)
	todoHandler := handlers.NewTodoHandler(&todoService, repo)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.RateLimit(100))

	// фиксированный набор CORS-заголовков на каждом ответе, включая
	// ошибки и ответы без Origin; любой OPTIONS завершается 200 без тела
	// до аутентификации
	r.Use(middleware.Cors(cfg.Cors.AllowedOrigin))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Cors.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.Route("/api/todos", func(r chi.Router) {
		r.Use(middleware.Auth(verifier))

		r.Get("/", todoHandler.GetTodos)  // GET /api/todos
		r.Post("/", todoHandler.PostTodo) // POST /api/todos

		r.Route("/{id}", func(r chi.Router) {
			r.Put("/", todoHandler.UpdateTodoByID)    // PUT /api/todos/{id}
			r.Delete("/", todoHandler.DeleteTodoByID) // DELETE /api/todos/{id}
		})
	})

	r.Get("/health", todoHandler.HealthCheck)

	logger.Info("Server started", zap.String("addr", cfg.GetServerAddr()))
	http.ListenAndServe(cfg.GetServerAddr(), r)
}

func buildRepository(ctx context.Context, cfg *config.Config) (repository.TodoRepository, func(), error) {
	switch cfg.Repository.Type {
	case "postgres":
		storage, err := pgrepo.New(ctx, cfg.Repository.PostgresURL)
		if err != nil {
			return nil, nil, err
		}

		migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := storage.Migrate(migrateCtx); err != nil {
			storage.Close()
			return nil, nil, err
		}

		return storage, storage.Close, nil

	case "inmemory":
		return inmemory.NewTodoStorage(), func() {}, nil

	default:
		storage, err := fsrepo.New(ctx, cfg.Repository.FirestoreProject, cfg.Auth.CredentialsFile)
		if err != nil {
			return nil, nil, err
		}
		return storage, storage.Close, nil
	}
}

func buildVerifier(ctx context.Context, cfg *config.Config) (identity.Verifier, error) {
	if cfg.Auth.Mode == "static" {
		tokens := map[string]identity.Identity{}
		for _, t := range cfg.Auth.StaticTokens {
			tokens[t.Token] = identity.Identity{UID: t.UID, Email: t.Email}
		}
		logger.Warn("Identity: static-режим аутентификации, только для разработки")
		return identity.NewStaticVerifier(tokens), nil
	}

	return identity.NewFirebaseVerifier(ctx, cfg.Auth.ProjectID, cfg.Auth.CredentialsFile)
}
