package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"modulear/internal/api"
	"modulear/internal/backup"
	"modulear/internal/kvstore"
	"modulear/internal/quiz"
	"modulear/internal/sse"
	"modulear/internal/store"
	"modulear/internal/watcher"
	"modulear/pkg/config"
)

const shutdownTimeout = 10 * time.Second

// LoadConfig loads configuration from path, falling back to defaults
// when the file does not exist.
func LoadConfig(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("validating default config: %w", err)
		}
		return cfg, nil
	}
	if err := config.Load(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// OpenBackend opens the durable key-value backend described by cfg.
func OpenBackend(cfg StorageConfig) (kvstore.Backend, error) {
	switch cfg.Driver {
	case StorageDriverFS:
		if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		return kvstore.NewFS(cfg.Path)
	case StorageDriverSQLite, "":
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating database directory: %w", err)
			}
		}
		return kvstore.OpenSQLite(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// Run starts the application and blocks until the context is cancelled
// or a termination signal arrives.
func Run(ctx context.Context, opts ...Option) error {
	o := newOptions(opts...)

	cfg := o.config
	if cfg == nil {
		var err error
		cfg, err = LoadConfig("config/config.yaml")
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.Level(),
	}))
	slog.SetDefault(logger)

	backend, err := OpenBackend(cfg.Storage)
	if err != nil {
		return fmt.Errorf("opening storage backend: %w", err)
	}
	defer backend.Close()

	stores := store.NewAggregate(backend, logger)

	broker := sse.NewBroker()
	defer broker.Close()

	backupSvc := backup.NewService(backend, stores, logger)
	quizMgr := quiz.NewManager(stores.Vocabulary)

	handler := api.NewHandler(stores, backupSvc, quizMgr, broker)
	apiRouter := api.NewRouter(handler, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	root := chi.NewRouter()
	root.Use(middleware.RequestID)
	root.Use(middleware.RealIP)
	root.Use(middleware.Logger)
	root.Use(middleware.Recoverer)
	root.Get("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	root.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	root.Mount("/api", apiRouter)

	server := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: root,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	if cfg.Storage.Driver == StorageDriverFS {
		dir := cfg.Storage.Path
		g.Go(func() error {
			return watcher.Watch(ctx, dir, logger, func() {
				stores.Reload()
				broker.Publish(sse.ReloadEvent())
			})
		})
	}

	g.Go(func() error {
		logger.Info("starting http server", "addr", server.Addr, "driver", cfg.Storage.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
