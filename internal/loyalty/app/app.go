package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/opencampus/tally/internal/loyalty/http"
	"github.com/opencampus/tally/internal/loyalty/service"
	"github.com/opencampus/tally/internal/loyalty/store"
	"github.com/opencampus/tally/internal/loyalty/store/drivers/sqlite"
	"github.com/opencampus/tally/pkg/jwtx"
	"github.com/opencampus/tally/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application wires the loyalty service together: store, clock, services
// and the HTTP surface.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db    store.Store
	keys  *jwtx.EdDSAKeypair
	clock *service.SimClock

	codeService     *service.CodeService
	queueService    *service.QueueService
	checkinService  *service.CheckinService
	rewardService   *service.RewardService
	userService     *service.UserService
	tokenService    *service.TokenService
	hostCodeService *service.HostCodeService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "tally",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	// Tokens are signed with an ephemeral per-process keypair: a restart
	// logs everyone out, which is acceptable for 15-minute tokens.
	keys, err := jwtx.NewEphemeralEdDSA(cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize signing key: %w", err)
	}
	app.keys = keys

	app.initServices()

	if err := app.rewardService.EnsureDefaults(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to seed rewards: %w", err)
	}

	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("loyalty service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down loyalty service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("loyalty service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations.
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.clock = service.NewSimClock(service.SystemClock{})

	app.codeService = &service.CodeService{Clock: app.clock}
	app.queueService = &service.QueueService{
		FeedPath: app.cfg.QueueFeedPath,
		Clock:    app.clock,
	}
	app.checkinService = &service.CheckinService{
		Store: app.db,
		Codes: app.codeService,
		Queue: app.queueService,
		Clock: app.clock,
	}
	app.rewardService = &service.RewardService{Store: app.db, Clock: app.clock}
	app.userService = &service.UserService{Store: app.db, Clock: app.clock}
	app.tokenService = &service.TokenService{
		Signer:    app.keys,
		Issuer:    app.cfg.Issuer,
		AccessTTL: app.cfg.AccessTokenTTL,
		Clock:     app.clock,
	}
	app.hostCodeService = &service.HostCodeService{
		Secret: app.cfg.HostCodeSecret,
		Clock:  app.clock,
	}
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(app.keys, BuildVersion, app.db, app.logger)

	router.Clock = app.clock
	router.CodeService = app.codeService
	router.QueueService = app.queueService
	router.CheckinService = app.checkinService
	router.RewardService = app.rewardService
	router.UserService = app.userService
	router.TokenService = app.tokenService
	router.HostCodeService = app.hostCodeService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
