// Package server wires the EventHub backend together: it opens the database,
// applies migrations, builds the services and runs the gRPC endpoint next to
// the Prometheus /metrics endpoint until the process is asked to stop.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/eventhub/internal/logging"
	"github.com/dmitrijs2005/eventhub/internal/server/config"
	"github.com/dmitrijs2005/eventhub/internal/server/ratelimit"
	"github.com/dmitrijs2005/eventhub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/eventhub/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/eventhub/internal/server/grpc"
)

const (
	tokenPurgeInterval = time.Hour
	shutdownTimeout    = 10 * time.Second
)

var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	limiter  ratelimit.Limiter
	auth     *services.AuthService
	server   *gs.GRPCServer
	registry *prometheus.Registry
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	limiter, err := newLimiter(ctx, c, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("rate limiter init error: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	auth := services.NewAuthService(db, rm, limiter, logger, c)
	svc := gs.Services{
		Auth:          auth,
		Profiles:      services.NewProfileService(db, rm, logger),
		Events:        services.NewEventService(db, rm, logger),
		Registrations: services.NewRegistrationService(db, rm, logger),
		Storage:       services.NewStorageService(c, logger),
	}
	server := gs.NewGRPCServer(c.EndpointAddrGRPC, logger, svc, c.SecretKey, gs.NewMetrics(registry))

	return &App{
		config:   c,
		logger:   logger,
		db:       db,
		limiter:  limiter,
		auth:     auth,
		server:   server,
		registry: registry,
	}, nil
}

// newLimiter shares sign-in attempts through Redis when an address is
// configured and keeps them in process memory otherwise.
func newLimiter(ctx context.Context, c *config.Config, logger logging.Logger) (ratelimit.Limiter, error) {
	if c.RedisAddr == "" {
		return ratelimit.NewMemoryLimiter(c.SignInAttempts, c.SignInWindow), nil
	}
	return ratelimit.NewRedisLimiter(ctx, c.RedisAddr, c.SignInAttempts, c.SignInWindow, logger)
}

func (app *App) runMetricsServer(ctx context.Context) error {
	if app.config.MetricsAddr == "" {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{Registry: app.registry}))
	srv := &http.Server{
		Addr:              app.config.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	app.logger.Info(ctx, "Starting metrics server", "address", app.config.MetricsAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (app *App) purgeExpiredTokens(ctx context.Context) error {
	ticker := time.NewTicker(tokenPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			n, err := app.auth.PurgeExpiredTokens(ctx)
			if err != nil {
				app.logger.Error(ctx, "purge expired tokens", "error", err)
				continue
			}
			app.logger.Debug(ctx, "expired refresh tokens purged", "count", n)
		}
	}
}

// Run blocks until SIGINT/SIGTERM/SIGQUIT or until one of the servers fails.
func (app *App) Run(ctx context.Context) error {

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.server.Run(ctx) })
	g.Go(func() error { return app.runMetricsServer(ctx) })
	g.Go(func() error { return app.purgeExpiredTokens(ctx) })

	err := g.Wait()

	if cerr := app.limiter.Close(); cerr != nil {
		app.logger.Error(context.Background(), "limiter close", "error", cerr)
	}
	if cerr := app.db.Close(); cerr != nil {
		app.logger.Error(context.Background(), "db close", "error", cerr)
	}

	app.logger.Info(context.Background(), "App stopped")
	return err
}
