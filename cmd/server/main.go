package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/anonto42/introhub/backend/internal/cache"
	"github.com/anonto42/introhub/backend/internal/email"
	"github.com/anonto42/introhub/backend/internal/handlers"
	"github.com/anonto42/introhub/backend/internal/models"
	"github.com/anonto42/introhub/backend/internal/router"
	"github.com/anonto42/introhub/backend/internal/storage"
	"github.com/anonto42/introhub/backend/internal/validators"
	"github.com/anonto42/introhub/backend/pkg/config"
	"github.com/anonto42/introhub/backend/pkg/firebase"
	"github.com/anonto42/introhub/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	config.LoadEnv()
	cfg := config.Load()
	logger.New(cfg.Env)
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	// Initialize Firebase
	var firebaseAuth *fbauth.Client
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		return err
	}
	if firebaseApp != nil {
		firebaseAuth = firebaseApp.AuthClient
	}

	store, err := storage.New(cfg.Storage)
	if err != nil {
		return err
	}
	mailer, err := email.NewEmailService(cfg.Mail)
	if err != nil {
		return err
	}

	companyCache := cache.New[[]models.Company](cfg.Cache.TTL, cfg.Cache.CleanupFreq)
	defer companyCache.Close()
	companyCache.StartCleanup(ctx)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handlers.ErrorHandler
	e.Validator = validators.NewValidator()

	// Setup global middleware
	config.SetupMiddleware(e, cfg)

	// Setup routes and dependencies
	err = router.SetupRoutes(ctx, e, router.Dependencies{
		Config:       cfg,
		Postgres:     db.Postgres,
		Mongo:        db.Mongo,
		Firebase:     firebaseAuth,
		Storage:      store,
		Mailer:       mailer,
		CompanyCache: companyCache,
		Validator:    validators.NewValidator(),
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
