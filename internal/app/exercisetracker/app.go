package exercisetracker

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/exercise-tracker/internal/cache"
	"github.com/magabrotheeeer/exercise-tracker/internal/config"
	"github.com/magabrotheeeer/exercise-tracker/internal/migrations"
	"github.com/magabrotheeeer/exercise-tracker/internal/rabbitmq"
	exerciselogservice "github.com/magabrotheeeer/exercise-tracker/internal/services/exerciselog"
	userservice "github.com/magabrotheeeer/exercise-tracker/internal/services/user"
	"github.com/magabrotheeeer/exercise-tracker/internal/storage/repository"
)

// App хранит собранные зависимости приложения.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
	rabbit *amqp.Connection
}

// New подключает хранилище, применяет миграции, поднимает кеш и брокер
// событий и собирает HTTP-сервер с маршрутами.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}
	if err = repository.CheckDatabaseReady(db); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	rabbitConn, err := rabbitmq.Connect(cfg.AddressRabbit, cfg.Retries, cfg.RetryDelay)
	if err != nil {
		return nil, err
	}
	rabbitCh, err := rabbitmq.SetupChannel(rabbitConn)
	if err != nil {
		return nil, err
	}
	events := rabbitmq.NewPublisher(rabbitCh)

	userService := userservice.New(db, events, logger)
	logService := exerciselogservice.New(db, cacheRedis, events, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, userService, logService, cfg.StaticDir)

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
		rabbit: rabbitConn,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до отмены контекста
// или ошибки сервера. При отмене выполняет graceful shutdown.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		_ = a.rabbit.Close()
		return err
	}
}
