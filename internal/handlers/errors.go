package handlers

import (
	"net/http"
	"todoTracker/internal/logger"
	"todoTracker/internal/service"

	"go.uber.org/zap"
)

func handleBusinessError(w http.ResponseWriter, err error) bool {
	if businessErr, ok := err.(*service.BusinessError); ok {
		statusCode := mapBusinessErrorToHTTP(businessErr.Code)

		logger.Warn("HTTP: Бизнес-ошибка",
			zap.String("error_code", businessErr.Code),
			zap.Int("http_status", statusCode))

		responseWithJSON(w, statusCode, map[string]any{
			"error":   businessErr.Code,
			"message": businessErr.Message,
			"details": businessErr.Details,
		})
		return true
	}
	return false
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case "NOT_FOUND":
		return http.StatusNotFound
	case "FORBIDDEN":
		return http.StatusForbidden
	case "VALIDATION_ERROR":
		return http.StatusBadRequest
	default:
		return http.StatusBadRequest
	}
}
