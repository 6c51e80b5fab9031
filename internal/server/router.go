package server

import (
	"net/http"

	"github.com/mesaviva/menurag/internal/api/handlers"
	"github.com/mesaviva/menurag/internal/api/middleware"
	"github.com/go-chi/chi/v5"
)

type RouterConfig struct {
	ChatHandler   *handlers.ChatHandler
	DishHandler   *handlers.DishHandler
	HealthHandler *handlers.HealthHandler
	AdminHandler  *handlers.AdminHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 1 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", cfg.HealthHandler.Check)

	r.Post("/chat", cfg.ChatHandler.Query)

	r.Route("/dishes", func(r chi.Router) {
		r.Get("/", cfg.DishHandler.List)
		r.Get("/{id}", cfg.DishHandler.Get)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Post("/seed", cfg.AdminHandler.Seed)
		r.Post("/index", cfg.AdminHandler.Index)
	})

	return r
}
