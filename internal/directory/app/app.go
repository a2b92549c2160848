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

	httpapi "github.com/NotFromFatec/Carometro-V2/internal/directory/http"
	"github.com/NotFromFatec/Carometro-V2/internal/directory/mail"
	"github.com/NotFromFatec/Carometro-V2/internal/directory/service"
	"github.com/NotFromFatec/Carometro-V2/internal/directory/store"
	"github.com/NotFromFatec/Carometro-V2/internal/directory/store/drivers/sqlite"
	"github.com/NotFromFatec/Carometro-V2/pkg/cryptox"
	"github.com/NotFromFatec/Carometro-V2/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the directory service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db store.Store

	inviteService       *service.InviteService
	registrationService *service.RegistrationService
	dispatchService     *service.DispatchService
	accountService      *service.AccountService
	adminService        *service.AdminService
	courseService       *service.CourseService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "directory-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
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
	app.logger.Info("directory service starting", "port", app.cfg.Port, "version", BuildVersion)

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
	app.logger.Info("shutting down directory service...")

	// Give outstanding requests a deadline for completion
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

	app.logger.Info("directory service stopped")
	return nil
}

// initDatabase opens the sqlite database and applies migrations.
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
	app.inviteService = &service.InviteService{Store: app.db}
	app.registrationService = &service.RegistrationService{
		Store:  app.db,
		Hasher: cryptox.HashPassword,
	}
	app.dispatchService = &service.DispatchService{
		Store: app.db,
		Sender: mail.NewSMTPSender(mail.SMTPConfig{
			Host:     app.cfg.SMTPHost,
			Port:     app.cfg.SMTPPort,
			Username: app.cfg.SMTPUsername,
			Password: app.cfg.SMTPPassword,
			From:     app.cfg.SMTPFrom,
		}),
		BaseURL: app.cfg.BaseURL,
	}
	app.accountService = &service.AccountService{
		Store:    app.db,
		Verifier: cryptox.VerifyPassword,
	}
	app.adminService = &service.AdminService{
		Store:     app.db,
		Hasher:    cryptox.HashPassword,
		Verifier:  cryptox.VerifyPassword,
		JWTSecret: app.cfg.JWTSecret,
		Issuer:    app.cfg.Issuer,
		TokenTTL:  app.cfg.TokenTTL,
	}
	app.courseService = &service.CourseService{Store: app.db}
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)

	router.InviteService = app.inviteService
	router.RegistrationService = app.registrationService
	router.DispatchService = app.dispatchService
	router.AccountService = app.accountService
	router.AdminService = app.adminService
	router.CourseService = app.courseService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
