// Package server initializes and runs the application server: database,
// migrations, object storage, services, and the HTTP API, with graceful
// shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/buildlog-app/buildlog/internal/logging"
	"github.com/buildlog-app/buildlog/internal/server/config"
	"github.com/buildlog-app/buildlog/internal/server/httpapi"
	"github.com/buildlog-app/buildlog/internal/server/repositories/repomanager"
	"github.com/buildlog-app/buildlog/internal/server/services"
	"github.com/buildlog-app/buildlog/internal/server/storage"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	store := storage.NewS3Store(cfg)

	userService := services.NewUserService(db, rm, cfg)
	projectService := services.NewProjectService(db, rm)
	uploadService := services.NewUploadService(db, rm, store, cfg, logger)
	checkInService := services.NewCheckInService(db, rm, store, uploadService, logger)
	settingsService := services.NewSettingsService(db, rm)

	srv := httpapi.NewServer(cfg, logger,
		userService, projectService, checkInService, uploadService, settingsService)

	return &App{config: cfg, logger: logger, db: db, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting server", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Start(); err != nil && err != http.ErrServerClosed {
			app.logger.Error(ctx, "http server stopped", "error", err)
			cancelFunc()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := app.server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "shutdown error", "error", err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(shutdownCtx, "db close error", "error", err)
	}

	wg.Wait()
	app.logger.Info(context.Background(), "server stopped")
}
