package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"
	"todoTracker/internal/handlers/dto"
	"todoTracker/internal/logger"
	"todoTracker/internal/middleware"
	"todoTracker/internal/models/todo"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TodoHandler struct {
	TodoService Service
	Health      Pinger
}

func NewTodoHandler(todoService Service, health Pinger) TodoHandler {
	return TodoHandler{
		TodoService: todoService,
		Health:      health,
	}
}

func (s *TodoHandler) GetTodos(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		responseWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	logger.Info("HTTP: Вызов сервиса для получения записей")

	todos, err := s.TodoService.List(r.Context(), ident)
	if err != nil {
		// детали сбоя хранилища наружу не отдаём
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "list_todos"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	logger.Info("HTTP_OUT: Записи получены",
		zap.Int("count", len(todos)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromTodoList(todos))
}

func (s *TodoHandler) PostTodo(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		responseWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("expected", "application/json"),
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type должен быть application/json")
		return
	}

	var request dto.CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "неверное тело запроса:"+err.Error())
		return
	}

	if strings.TrimSpace(request.Title) == "" {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "title"),
			zap.String("error", "empty_field"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "название не может быть пустым")
		return
	}

	logger.Info("HTTP: Вызов сервиса создания записи")

	created, err := s.TodoService.Create(r.Context(), ident,
		strings.TrimSpace(request.Title),
		strings.TrimSpace(request.Description),
		request.Status,
		request.Priority,
	)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}

		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "create_todo"),
			zap.String("client_ip", r.RemoteAddr),
			zap.Duration("ms", time.Since(start)))

		responseWithError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	logger.Info("HTTP_OUT: Запись создана",
		zap.String("todo_id", created.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromTodo(created))
}

func (s *TodoHandler) UpdateTodoByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		responseWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		logger.Warn("HTTP: Неверное значение id",
			zap.String("error", "empty id"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "id не может быть пустым")
		return
	}

	var request dto.UpdateTodoRequest

	decoder := json.NewDecoder(r.Body)
	defer r.Body.Close()

	if err := decoder.Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "неверно переданы параметры обновления:"+err.Error())
		return
	}

	options := []todo.TodoOption{}
	if request.Title != nil {
		options = append(options, todo.WithTitle(strings.TrimSpace(*request.Title)))
	}
	options = append(options, todo.WithDescription(request.Description))
	if request.Status != nil {
		options = append(options, todo.WithStatus(*request.Status))
	}
	if request.Priority != nil {
		options = append(options, todo.WithPriority(*request.Priority))
	}

	logger.Info("HTTP: запрос к сервису обновления записи")

	updated, err := s.TodoService.Update(r.Context(), ident, id, options...)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}

		logger.Error("HTTP: ошибка в Service", err,
			zap.String("operation", "update_todo"),
			zap.String("client_addr", r.RemoteAddr))

		responseWithError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	logger.Info("HTTP_OUT: Запись обновлена",
		zap.String("todo_id", updated.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromTodo(updated))
}

func (s *TodoHandler) DeleteTodoByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		responseWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		logger.Warn("HTTP: Неверное значение id",
			zap.String("error", "empty id"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "id не может быть пустым")
		return
	}

	logger.Info("HTTP: Обращение к сервису для удаления записи")

	if err := s.TodoService.Delete(r.Context(), ident, id); err != nil {
		if handleBusinessError(w, err) {
			return
		}

		logger.Error("HTTP: ошибка в Service", err,
			zap.String("operation", "delete_todo"),
			zap.String("client_addr", r.RemoteAddr))

		responseWithError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	logger.Info("HTTP_OUT: Запись удалена",
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusNoContent))

	w.WriteHeader(http.StatusNoContent)
}

func (s *TodoHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: Health check")

	if s.Health != nil {
		if err := s.Health.HealthCheck(r.Context()); err != nil {
			logger.Error("HTTP: Хранилище недоступно", err)
			responseWithJSON(w, http.StatusServiceUnavailable, map[string]any{
				"status":  "unavailable",
				"service": "todo-tracker",
			})
			return
		}
	}

	healthCheck(w)
}
