// Package exercisetracker предоставляет маршруты приложения.
package exercisetracker

import (
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/exercise-tracker/internal/http/handlers/exercise/add"
	exerciselog "github.com/magabrotheeeer/exercise-tracker/internal/http/handlers/exercise/log"
	"github.com/magabrotheeeer/exercise-tracker/internal/http/handlers/user/register"
	"github.com/magabrotheeeer/exercise-tracker/internal/http/middlewarectx"
	exerciselogservice "github.com/magabrotheeeer/exercise-tracker/internal/services/exerciselog"
	userservice "github.com/magabrotheeeer/exercise-tracker/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, userService *userservice.Service,
	logService *exerciselogservice.Service, staticDir string) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// Конечные точки API
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger))
		r.Post("/new-user", register.New(logger, userService).ServeHTTP)
		r.Post("/add_exercise", add.New(logger, logService).ServeHTTP)
		r.Get("/log/{userId}", exerciselog.New(logger, logService).ServeHTTP)
	})

	// Статическая стартовая страница
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, filepath.Join(staticDir, "index.html"))
	})
	r.Handle("/public/*", http.StripPrefix("/public/", http.FileServer(http.Dir(staticDir))))

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
