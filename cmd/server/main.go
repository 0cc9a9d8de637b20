// @title                       User Service API
// @version                     1.0
// @description                 CRUD operations on users with bearer-token authentication.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/user-service/internal/api"
	"github.com/99minutos/user-service/internal/core/ports"
	"github.com/99minutos/user-service/internal/core/service"
	mongostore "github.com/99minutos/user-service/internal/infrastructure/db/mongo"
	"github.com/99minutos/user-service/internal/infrastructure/db/relational"
	"github.com/99minutos/user-service/internal/pkg/config"
	"github.com/99minutos/user-service/internal/pkg/password"
	"github.com/99minutos/user-service/internal/pkg/token"
	"github.com/99minutos/user-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "user-service",
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// run wires the service and blocks until a shutdown signal arrives or the
// listener fails. Deferred cleanups always run before it returns.
func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeStore, err := openStore(ctx, cfg.Store, log)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}
	defer closeStore()

	issuer, err := token.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.Algorithm, cfg.Auth.AccessTokenTTL())
	if err != nil {
		return fmt.Errorf("configure token issuer: %w", err)
	}
	hasher := password.NewHasher(cfg.Auth.BcryptCost)

	e := api.NewRouter(api.Dependencies{
		Users:     service.NewUserService(repo, hasher, logger.Named("users")),
		Auth:      service.NewAuthService(repo, hasher, issuer, logger.Named("auth")),
		Store:     repo,
		StoreName: cfg.Store.Driver,
		Logger:    logger.Named("http"),
	})

	log.Info().Str("port", cfg.Port).Str("store", cfg.Store.Driver).Msg("server starting")
	return serve(ctx, e, ":"+cfg.Port, log)
}

// serve runs e on addr until ctx is done, then shuts it down gracefully.
// A listener failure is returned as soon as it happens.
func serve(ctx context.Context, e *echo.Echo, addr string, log zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

// openStore connects the configured backend and returns its repository
// together with a func releasing the connection.
func openStore(ctx context.Context, cfg config.StoreConfig, log zerolog.Logger) (ports.UserRepository, func(), error) {
	switch cfg.Driver {
	case config.DriverMongo:
		store, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.MongoURI, Database: cfg.MongoDB})
		if err != nil {
			return nil, nil, err
		}
		repo := mongostore.NewUserRepository(store.Database())
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = store.Close()
			return nil, nil, err
		}
		return repo, func() {
			if err := store.Close(); err != nil {
				log.Error().Err(err).Msg("mongo disconnect")
			}
		}, nil

	default:
		dsn := cfg.DatabaseURL
		if cfg.Driver == config.DriverSQLite {
			dsn = cfg.SQLitePath
		}
		db, err := relational.Open(ctx, relational.Config{Dialect: cfg.Driver, DSN: dsn})
		if err != nil {
			return nil, nil, err
		}
		return relational.NewUserRepository(db), func() {
			if err := relational.Close(db); err != nil {
				log.Error().Err(err).Msg("db close")
			}
		}, nil
	}
}
