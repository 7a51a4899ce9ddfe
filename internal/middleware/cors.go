package middleware

import "net/http"

const (
	allowedHeaders = "authorization, content-type, x-api-key, x-user-id"
	allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
)

// CORS разрешает запросы с любого origin. Preflight OPTIONS отвечает 204 без вызова обработчика.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Headers", allowedHeaders)
		h.Set("Access-Control-Allow-Methods", allowedMethods)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
