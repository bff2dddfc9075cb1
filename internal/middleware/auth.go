package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"todoTracker/internal/identity"
	"todoTracker/internal/logger"

	"go.uber.org/zap"
)

const identityKey contextKey = "identity"

// Auth извлекает bearer-токен и проверяет его во внешнем провайдере.
// Ответ 401 без деталей — какой именно токен и почему не прошёл,
// остаётся только в логах.
func Auth(verifier identity.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if len(authHeader) < 8 || authHeader[:7] != "Bearer " {
				logger.Warn("HTTP: Отсутствует bearer-токен",
					zap.String("request_id", GetRequestID(r.Context())),
					zap.String("client_ip", r.RemoteAddr))

				unauthorized(w)
				return
			}

			token := authHeader[7:]

			ident, err := verifier.Verify(r.Context(), token)
			if err != nil {
				if errors.Is(err, identity.ErrInvalidToken) {
					logger.Warn("HTTP: Недействительный токен",
						zap.String("request_id", GetRequestID(r.Context())),
						zap.String("client_ip", r.RemoteAddr))
				} else {
					logger.Error("HTTP: Ошибка проверки токена", err,
						zap.String("request_id", GetRequestID(r.Context())))
				}

				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func IdentityFromContext(ctx context.Context) (identity.Identity, bool) {
	ident, ok := ctx.Value(identityKey).(identity.Identity)
	return ident, ok
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]any{"error": "Unauthorized"})
}
