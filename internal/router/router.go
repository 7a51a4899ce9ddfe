package router

import (
	"github.com/Totarae/linkbucket/internal/auth"
	"github.com/Totarae/linkbucket/internal/handlers"
	"github.com/Totarae/linkbucket/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// NewRouter создаёт и настраивает маршрутизатор
func NewRouter(handler *handlers.Handler, authService *auth.Auth, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.LoggingMiddleware(logger)) // Подключаем логирование
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS)

	r.MethodNotAllowed(handler.MethodNotAllowed)
	r.NotFound(handler.NotFound)

	routes := apiRoutes(handler, authService)
	r.Mount("/api", routes)
	r.Mount("/", routes)
	return r
}

func apiRoutes(handler *handlers.Handler, authService *auth.Auth) chi.Router {
	r := chi.NewRouter()
	r.MethodNotAllowed(handler.MethodNotAllowed)
	r.NotFound(handler.NotFound)

	// Gzip подключается после проверки доступа: неверный ключ или токен
	// дают 401, даже если тело запроса не распаковывается.
	r.With(middleware.GzipMiddleware).Get("/ping", handler.Ping)

	r.With(authService.RequireAPIKey, middleware.GzipMiddleware).Post("/save", handler.SaveLink)

	r.Group(func(r chi.Router) {
		r.Use(authService.RequireUser)
		r.Use(middleware.GzipMiddleware)

		r.Route("/buckets", func(r chi.Router) {
			r.Get("/", handler.ListBuckets)
			r.Post("/", handler.CreateBucket)
			r.Put("/{id}", handler.RenameBucket)
			r.Delete("/{id}", handler.DeleteBucket)
		})

		r.Route("/links", func(r chi.Router) {
			r.Get("/", handler.ListLinks)
			r.Post("/", handler.CreateLink)
			r.Put("/{id}", handler.UpdateLink)
			r.Delete("/{id}", handler.DeleteLink)
		})

		r.Post("/categorize", handler.Categorize)
	})
	return r
}
