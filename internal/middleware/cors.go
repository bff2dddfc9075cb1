package middleware

import (
	"net/http"
)

// Cors безусловно проставляет фиксированный набор заголовков на каждый
// ответ, включая ошибки, и отвечает на любой OPTIONS кодом 200 без тела.
// Заголовки не зависят от Origin запроса: разрешённый origin один и задан
// конфигурацией.
func Cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			h.Set("Access-Control-Allow-Credentials", "true")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
