package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/heartmarshall/safetylog-backend/internal/adapter/postgres"
	pgestablishment "github.com/heartmarshall/safetylog-backend/internal/adapter/postgres/establishment"
	"github.com/heartmarshall/safetylog-backend/internal/auth"
	"github.com/heartmarshall/safetylog-backend/internal/config"
	"github.com/heartmarshall/safetylog-backend/internal/service/establishment"
	"github.com/heartmarshall/safetylog-backend/internal/telemetry"
	"github.com/heartmarshall/safetylog-backend/internal/transport/middleware"
	"github.com/heartmarshall/safetylog-backend/internal/transport/rest"
)

const rateLimiterSweep = 5 * time.Minute

// Run is the API server entry point. It loads configuration, connects to
// the database, wires the establishment store behind the REST router and
// serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	shutdownTracing, err := telemetry.InitTracing(ctx, logger, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Error("tracing shutdown", slog.String("error", err.Error()))
		}
	}()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	reporter := telemetry.NewReporter(logger, reg)
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	establishments := establishment.NewService(logger, pgestablishment.New(pool), reporter)

	limiter := middleware.NewRateLimiter(rateLimiterSweep)
	defer limiter.Stop()

	handler := rest.NewRouter(rest.RouterDeps{
		Logger:         logger,
		CORS:           cfg.CORS,
		Auth:           middleware.Auth(jwtManager),
		Metrics:        middleware.NewHTTPMetrics(reg),
		Gatherer:       reg,
		RateLimiter:    limiter,
		RateLimit:      cfg.Server.RateLimit,
		Health:         rest.NewHealthHandler(BuildVersion(), rest.Component{Name: "database", Ping: pool}),
		Establishments: rest.NewEstablishmentHandler(establishments, logger),
	})

	return serve(ctx, logger, cfg.Server, handler)
}

func serve(ctx context.Context, logger *slog.Logger, cfg config.ServerConfig, handler http.Handler) error {
	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
