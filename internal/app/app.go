// Package app wires configuration, the mutation engine, and the HTTP surface
// into a runnable daemon.
package app

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

	"github.com/gofrs/flock"

	"go-file-manager/internal/clipboard"
	"go-file-manager/internal/config"
	"go-file-manager/internal/event"
	"go-file-manager/internal/fsops"
	"go-file-manager/internal/handler"
	"go-file-manager/internal/history"
	"go-file-manager/internal/middleware"
	"go-file-manager/internal/router"
	"go-file-manager/internal/search"
	"go-file-manager/internal/service"
	"go-file-manager/internal/storage"
	"go-file-manager/internal/websocket"
)

type App struct {
	server       *http.Server
	cleanupFuncs []func()
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := os.MkdirAll(cfg.StateDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to prepare state directory: %w", err)
	}

	// Two daemons sharing one trash and undo state would corrupt both;
	// refuse to start if another instance holds the lock.
	instanceLock := flock.New(filepath.Join(cfg.StateDir, "daemon.lock"))
	locked, err := instanceLock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire instance lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another instance is already running (lock held on %s)", instanceLock.Path())
	}

	store, err := storage.New(cfg.StorageRoot)
	if err != nil {
		_ = instanceLock.Unlock()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	engine, err := fsops.NewEngine(cfg.TrashRoot)
	if err != nil {
		_ = instanceLock.Unlock()
		return nil, fmt.Errorf("failed to initialize operation engine: %w", err)
	}

	undoLog := history.NewUndoLog(cfg.UndoCapacity)
	board := clipboard.New()

	bus := event.NewBus()
	hub := websocket.NewHub(bus)
	go hub.Run()

	coordinator := search.NewCoordinator(cfg.SearchBuffer)

	authService := service.NewAuthService(cfg.JWTSecret, cfg.AdminPasswordHash, cfg.JWTAccessTTL)
	if authService.Enabled() {
		slog.Info("authentication enabled")
	} else {
		slog.Warn("authentication disabled, API is open")
	}

	operationsService := service.NewOperationsService(store, engine, undoLog, board, bus)
	directoryService := service.NewDirectoryService(store)
	searchService := service.NewSearchService(store, coordinator, bus)

	appRouter := router.New(cfg, middleware.NewAuthMiddleware(authService), router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Directory:  handler.NewDirectoryHandler(directoryService),
		Operations: handler.NewOperationsHandler(operationsService),
		Search:     handler.NewSearchHandler(searchService),
	}, hub)

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	slog.Info("daemon initialized",
		"storage_root", store.RootAbs(),
		"trash_root", engine.TrashDir(),
		"undo_capacity", cfg.UndoCapacity,
	)

	return &App{
		server: server,
		cleanupFuncs: []func(){
			func() {
				_ = instanceLock.Unlock()
			},
		},
	}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
