package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"todoApi/internal/auth"
	"todoApi/internal/config"
	"todoApi/internal/handlers"
	"todoApi/internal/logger"
	"todoApi/internal/middleware"
	"todoApi/internal/repository/inter"
	"todoApi/internal/repository/task/inmemory"
	"todoApi/internal/repository/task/postgres"
	"todoApi/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type App struct {
	config    *config.Config
	server    *http.Server
	router    *chi.Mux
	repo      inter.TaskRepository
	verifier  auth.TokenVerifier
	shutdowns []func() // функции для graceful shutdown, в обратном порядке
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}

	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Завершение работы логгирования...")
		logger.Sync()
	})

	if err := a.initRepository(ctx); err != nil {
		return err
	}

	if err := a.initVerifier(ctx); err != nil {
		return err
	}

	taskService := service.NewTaskService(a.repo)
	taskHandler := handlers.NewTaskHandler(&taskService)

	a.router = a.buildRouter(&taskHandler)
	a.server = &http.Server{
		Addr:              a.config.GetServerAddr(),
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return nil
}

func (a *App) initRepository(ctx context.Context) error {
	switch a.config.Repository.Type {
	case "inmemory":
		a.repo = inmemory.NewTaskStorage()
		logger.Info("App: Используется inmemory-репозиторий")
		return nil
	default:
		if err := postgres.Migrate(a.config.Database.URL); err != nil {
			return fmt.Errorf("миграции: %w", err)
		}

		storage, err := postgres.New(ctx, a.config.Database.URL, postgres.PoolConfig{
			MaxConns:        a.config.Database.MaxConnections,
			MinConns:        a.config.Database.MinConnections,
			MaxConnIdleTime: a.config.Database.MaxConnIdleTime,
		})
		if err != nil {
			return fmt.Errorf("подключение к PostgreSQL: %w", err)
		}

		a.repo = storage
		a.shutdowns = append(a.shutdowns, storage.Close)
		return nil
	}
}

func (a *App) initVerifier(ctx context.Context) error {
	if a.config.Auth.JWKSURL != "" {
		verifier, err := auth.NewJWKSVerifier(ctx, a.config.Auth.JWKSURL)
		if err != nil {
			return fmt.Errorf("инициализация JWKS: %w", err)
		}
		a.verifier = verifier
		logger.Info("App: Проверка токенов через JWKS")
		return nil
	}

	a.verifier = auth.NewSecretVerifier(a.config.Auth.Secret)
	logger.Info("App: Проверка токенов по общему секрету")
	return nil
}

func (a *App) buildRouter(taskHandler *handlers.TaskHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.RateLimit(100))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   a.config.CORS.Origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Get("/health", taskHandler.HealthCheck)

	r.Route("/api/{userID}/tasks", func(r chi.Router) {
		r.Use(middleware.Authenticate(a.verifier))

		r.Get("/", taskHandler.ListTasks)  // GET /api/{uid}/tasks
		r.Post("/", taskHandler.PostTask)  // POST /api/{uid}/tasks

		r.Route("/{id:[0-9]+}", func(r chi.Router) {
			r.Get("/", taskHandler.GetTaskByID)       // GET /api/{uid}/tasks/{id}
			r.Put("/", taskHandler.UpdateTaskByID)    // PUT /api/{uid}/tasks/{id}
			r.Delete("/", taskHandler.DeleteTaskByID) // DELETE /api/{uid}/tasks/{id}

			r.Patch("/complete", taskHandler.ToggleComplete) // PATCH /api/{uid}/tasks/{id}/complete
		})
	})

	return r
}

// Run блокируется до SIGINT/SIGTERM, затем гасит сервер и зависимости.
func (a *App) Run() error {
	errCh := make(chan error, 1)

	go func() {
		logger.Info("App: Сервер запущен")
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		a.shutdown()
		return fmt.Errorf("сервер: %w", err)
	case <-stop:
		logger.Info("App: Получен сигнал завершения")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		logger.Error("App: Ошибка остановки сервера", err)
	}

	a.shutdown()
	return nil
}

func (a *App) shutdown() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
}
