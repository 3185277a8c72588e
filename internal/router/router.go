package router

import (
	"github.com/Totarae/LinkCut/internal/auth"
	"github.com/Totarae/LinkCut/internal/handlers"
	"github.com/Totarae/LinkCut/internal/middleware"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// NewRouter создаёт и настраивает маршрутизатор
func NewRouter(handler *handlers.Handler, tokens *auth.TokenManager, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.LoggingMiddleware(logger)) // Подключаем логирование
	r.Use(middleware.GzipMiddleware)            // Gzip-сжатие

	r.Get("/ping", handler.Ping)

	r.Route("/api/v1", func(api chi.Router) {
		// создание доступно и анонимно, токен лишь привязывает владельца
		api.With(middleware.AuthOptional(tokens)).Post("/shortlinks", handler.ReceiveShorten)
		api.Post("/register", handler.RegisterUser)
		api.Post("/login", handler.LoginUser)
		api.With(middleware.AuthRequired(tokens)).Get("/users/mine", handler.UserLinks)
	})

	// редирект живёт на корне, чтобы короткая ссылка была короткой
	r.Get("/{code}", handler.ResponseURL)

	return r
}
