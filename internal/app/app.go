// Package app wires configuration, storage, services, and transport into
// runnable processes: the API server and the background worker.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/library-backend/internal/adapter/postgres"
	bookrepo "github.com/heartmarshall/library-backend/internal/adapter/postgres/book"
	jobrepo "github.com/heartmarshall/library-backend/internal/adapter/postgres/job"
	loanrepo "github.com/heartmarshall/library-backend/internal/adapter/postgres/loan"
	memberrepo "github.com/heartmarshall/library-backend/internal/adapter/postgres/member"
	"github.com/heartmarshall/library-backend/internal/adapter/smtp"
	"github.com/heartmarshall/library-backend/internal/auth"
	"github.com/heartmarshall/library-backend/internal/config"
	authsvc "github.com/heartmarshall/library-backend/internal/service/auth"
	"github.com/heartmarshall/library-backend/internal/service/catalog"
	"github.com/heartmarshall/library-backend/internal/service/circulation"
	"github.com/heartmarshall/library-backend/internal/service/notifier"
	"github.com/heartmarshall/library-backend/internal/service/overdue"
	"github.com/heartmarshall/library-backend/internal/transport/rest"
)

// Run starts the API server and blocks until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, logger, pool, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)
	books := bookrepo.New(pool)
	members := memberrepo.New(pool)
	loans := loanrepo.New(pool)
	jobs := jobrepo.New(pool)

	jwt := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	authService := authsvc.NewService(logger, members, jwt, cfg.Auth)
	catalogService := catalog.NewService(logger, books)
	circulationService := circulation.NewService(logger, books, loans, jobs, txm, cfg.Loan)

	handler := rest.NewRouter(rest.Deps{
		Log:     logger,
		Auth:    authService,
		Catalog: catalogService,
		Loans:   circulationService,
		DB:      pool,
		Version: BuildVersion(),
		CORS:    cfg.CORS,
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	return nil
}

// RunWorker starts the notification dispatcher and the overdue sweep and
// blocks until ctx is cancelled.
func RunWorker(ctx context.Context) error {
	cfg, logger, pool, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	books := bookrepo.New(pool)
	members := memberrepo.New(pool)
	loans := loanrepo.New(pool)
	jobs := jobrepo.New(pool)
	mail := smtp.New(cfg.Mail)

	dispatcher := notifier.NewService(logger, jobs, loans, members, books, mail, cfg.Notify, cfg.Loan.Period)
	sweeper := overdue.NewService(logger, loans, jobs, cfg.Loan)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		dispatcher.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		sweeper.Run(ctx)
	}()
	wg.Wait()

	return nil
}

// bootstrap loads and validates configuration, builds the logger, and
// connects to the database.
func bootstrap(ctx context.Context) (*config.Config, *slog.Logger, *pgxpool.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := connectPool(ctx, logger, cfg.Database)
	if err != nil {
		return nil, nil, nil, err
	}

	if cfg.Database.Migrate {
		if err := postgres.Migrate(ctx, cfg.Database.DSN); err != nil {
			pool.Close()
			return nil, nil, nil, fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("migrations applied")
	}

	return cfg, logger, pool, nil
}

// connectPool creates the pgx pool, retrying with exponential backoff while
// the database comes up.
func connectPool(ctx context.Context, logger *slog.Logger, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 30 * time.Second

	err := backoff.RetryNotify(
		func() error {
			var err error
			pool, err = postgres.NewPool(ctx, cfg)
			return err
		},
		backoff.WithContext(bo, ctx),
		func(err error, next time.Duration) {
			logger.Warn("database not ready, retrying",
				slog.Duration("next_attempt_in", next),
				slog.Any("error", err))
		},
	)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	return pool, nil
}
