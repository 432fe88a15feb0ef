package main

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

	"github.com/h-rawat/book-api/internal/auth"
	"github.com/h-rawat/book-api/internal/catalog"
	"github.com/h-rawat/book-api/internal/config"
	"github.com/h-rawat/book-api/internal/http_server/router"
	"github.com/h-rawat/book-api/internal/lib/jwt"
	sl "github.com/h-rawat/book-api/internal/lib/logger"
	"github.com/h-rawat/book-api/internal/lib/notification"
	"github.com/h-rawat/book-api/internal/lib/password"
	"github.com/h-rawat/book-api/internal/lib/validation"
	"github.com/h-rawat/book-api/internal/rabbitmq"
	"github.com/h-rawat/book-api/internal/storage/memory"
	"github.com/h-rawat/book-api/internal/storage/postgres"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

type store interface {
	auth.UserSaver
	auth.UserProvider
	catalog.BookStore
	Close()
}

// @title                       Book API
// @version                     1.0
// @description                 Book catalog with bearer-token accounts and password reset by e-mail.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the session token.
func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("starting book api", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	storage, err := setupStorage(ctx, cfg, log)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}
	defer storage.Close()

	publisher, closePublisher, err := setupPublisher(cfg, log)
	if err != nil {
		log.Error("failed to connect rabbitmq", sl.Err(err))
		os.Exit(1)
	}
	defer closePublisher()

	validate := validation.New()
	tokens := jwt.NewIssuer(cfg.Tokens.SessionSecret, cfg.Tokens.SessionTTL)

	authService := auth.New(
		log,
		validate,
		storage,
		storage,
		password.New(cfg.Accounts.PasswordCost),
		tokens,
		notification.New(log, publisher, cfg.Notifications.ResetPageURL),
		cfg.Tokens.ResetTTL,
		auth.WithConcealedAccounts(cfg.Accounts.ConcealUnknownEmail),
	)

	r := router.New(router.Deps{
		Log:                log,
		Accounts:           authService,
		Catalog:            catalog.New(log, validate, storage),
		Verifier:           tokens,
		CORSAllowedOrigins: cfg.HTTPServer.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      r,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server is running", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed", sl.Err(err))
			stop()
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down HTTP server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", sl.Err(err))
	} else {
		log.Info("Server stopped gracefully")
	}
}

func setupStorage(ctx context.Context, cfg *config.Config, log *slog.Logger) (store, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		log.Warn("using in-memory storage, data is lost on restart")
		return memory.New(), nil
	case config.StoragePostgres:
		repo, err := postgres.New(ctx, cfg)
		if err != nil {
			return nil, err
		}

		if err := repo.Migrate(ctx); err != nil {
			repo.Close()
			return nil, err
		}

		return repo, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func setupPublisher(cfg *config.Config, log *slog.Logger) (notification.Publisher, func(), error) {
	switch cfg.Notifications.Driver {
	case config.NotificationsLog:
		return notification.NewLogPublisher(log), func() {}, nil
	case config.NotificationsRabbitMQ:
		client, err := rabbitmq.New(log, cfg.RabbitMQ.URL, cfg.RabbitMQ.QueueName)
		if err != nil {
			return nil, nil, err
		}

		return client, client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown notifications driver %q", cfg.Notifications.Driver)
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}
