package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stuccorite/fieldforms/internal/portal/geo"
	httpapi "github.com/stuccorite/fieldforms/internal/portal/http"
	"github.com/stuccorite/fieldforms/internal/portal/service"
	"github.com/stuccorite/fieldforms/internal/portal/store"
	"github.com/stuccorite/fieldforms/internal/portal/store/drivers/sqlite"
	"github.com/stuccorite/fieldforms/pkg/jwtx"
	"github.com/stuccorite/fieldforms/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the portal with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	tokens *jwtx.HS256

	authService      *service.AuthService
	twoFactorService *service.TwoFactorService
	formService      *service.FormService
	jobSiteService   *service.JobSiteService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("PORTAL_JWT_SECRET is required")
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "portal",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.tokens = jwtx.NewHS256([]byte(cfg.JWTSecret), cfg.Issuer)
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler exposes the assembled HTTP handler, mainly for tests.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("portal starting", "port", app.cfg.Port, "version", BuildVersion)

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
	app.logger.Info("shutting down portal...")

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

	app.logger.Info("portal stopped")
	return nil
}

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

func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store:      app.db,
		Tokens:     app.tokens,
		InviteCode: app.cfg.InviteCode,
		SessionTTL: app.cfg.SessionTTL,
		PendingTTL: app.cfg.PendingTTL,
	}
	app.twoFactorService = &service.TwoFactorService{
		Store:      app.db,
		Tokens:     app.tokens,
		Issuer:     app.cfg.Issuer,
		SessionTTL: app.cfg.SessionTTL,
	}
	app.formService = &service.FormService{Store: app.db}

	geocoder := geo.NewCachedGeocoder(
		geo.NewNominatimClient(app.cfg.GeocoderBaseURL, "fieldforms-portal/"+BuildVersion),
		app.cfg.GeocoderCacheSize,
		app.cfg.GeocoderCacheTTL,
	)
	app.jobSiteService = &service.JobSiteService{
		Store:    app.db,
		Geocoder: geocoder,
	}
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.tokens,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.AuthService = app.authService
	router.TwoFactorService = app.twoFactorService
	router.FormService = app.formService
	router.JobSiteService = app.jobSiteService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
