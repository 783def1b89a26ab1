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

	"github.com/shiftbook/shiftbook/internal/invites/email"
	httpapi "github.com/shiftbook/shiftbook/internal/invites/http"
	"github.com/shiftbook/shiftbook/internal/invites/service"
	"github.com/shiftbook/shiftbook/internal/invites/store"
	"github.com/shiftbook/shiftbook/internal/invites/store/drivers/sqlite"
	"github.com/shiftbook/shiftbook/pkg/cryptox"
	"github.com/shiftbook/shiftbook/pkg/jwtx"
	"github.com/shiftbook/shiftbook/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the invitation service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db store.Store

	invitationService *service.InvitationService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "invites-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("INVITES_JWT_SECRET is required")
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("invites service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
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
	app.logger.Info("shutting down invites service...")

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

	app.logger.Info("invites service stopped")
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

// initServices initializes the business logic services.
func (app *Application) initServices() {
	mailer := email.NewMailer(email.MailerConfig{
		Provider:    app.cfg.MailProvider,
		FromAddress: app.cfg.MailFromAddress,
		FromName:    app.cfg.MailFromName,
		SES: email.SESConfig{
			Region:             app.cfg.SESRegion,
			AccessKeyID:        app.cfg.SESAccessKeyID,
			SecretAccessKey:    app.cfg.SESSecretAccessKey,
			InsecureSkipVerify: app.cfg.SESInsecureSkipVerify,
		},
	}, app.logger)

	app.invitationService = &service.InvitationService{
		Store:      app.db,
		Notifier:   email.NewNotifier(mailer, app.cfg.AppBaseURL, app.cfg.AppName),
		ExpiryDays: app.cfg.ExpiryDays,
	}
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	verifier := &jwtx.HS256Verifier{
		Secret: []byte(app.cfg.JWTSecret),
		Issuer: app.cfg.JWTIssuer,
	}

	router := httpapi.NewRouter(verifier, BuildVersion, app.db, app.logger)
	router.InvitationService = app.invitationService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
