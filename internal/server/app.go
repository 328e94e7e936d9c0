// Package server initializes and runs the attendance backend: configuration,
// database and migrations, the envelope codec, the domain services, and the
// HTTP server with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dgitonga/qrollcall/internal/logging"
	"github.com/dgitonga/qrollcall/internal/sealx"
	"github.com/dgitonga/qrollcall/internal/server/config"
	"github.com/dgitonga/qrollcall/internal/server/httpapi"
	"github.com/dgitonga/qrollcall/internal/server/repositories/repomanager"
	"github.com/dgitonga/qrollcall/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	// An empty secret must stop the process before any traffic is served.
	box, err := sealx.NewBox(cfg.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("envelope init error: %w", err)
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	access := services.NewAccessService(db, rm, cfg)
	catalog := services.NewCatalogService(db, rm)
	users := services.NewUserService(db, rm)
	schedules := services.NewScheduleService(db, rm)
	attendance := services.NewAttendanceService(db, rm, box)

	if err := access.EnsureAdmin(ctx); err != nil {
		return nil, fmt.Errorf("admin seed error: %w", err)
	}

	srv := httpapi.NewServer(cfg.EndpointAddrHTTP, logger, box, cfg.SecretKey,
		access, catalog, users, schedules, attendance)

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

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
}
