package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"golang.org/x/sync/errgroup"

	"github.com/coachdesk/coachdesk/pkg/analytics"
	"github.com/coachdesk/coachdesk/pkg/api"
	"github.com/coachdesk/coachdesk/pkg/auth"
	"github.com/coachdesk/coachdesk/pkg/config"
	"github.com/coachdesk/coachdesk/pkg/httputil"
	"github.com/coachdesk/coachdesk/pkg/observability"
	"github.com/coachdesk/coachdesk/pkg/service"
	"github.com/coachdesk/coachdesk/pkg/store"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, os.Stdout)

	// The prototype ships with a demo fixture; everything lives in memory
	// for the lifetime of the process.
	st := store.NewSeeded()

	var redisClient *redis.Client
	var sessions auth.SessionStore
	if cfg.Auth.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.Auth.RedisURL)
		if err != nil {
			logger.WithError(err).Error("Invalid Redis URL")
			os.Exit(1)
		}
		redisClient = redis.NewClient(opts)
		sessions = auth.NewRedisSessionStore(redisClient)
		logger.Info("Using Redis session store")
	} else {
		sessions = auth.NewMemorySessionStore()
		logger.Info("Using in-memory session store")
	}

	authenticator := auth.NewAuthenticator(st, sessions)
	svc := service.New(st, authenticator)

	var handler http.Handler = api.NewServer(svc)

	var metrics *observability.Metrics
	var collector *analytics.Collector
	if cfg.Observability.MetricsEnabled {
		metrics = observability.NewMetrics(nil)
		handler = metrics.Middleware(handler)

		collector = analytics.NewCollector(st, metrics, logger)
		if err := collector.Start(cfg.Observability.StatsRefreshSchedule); err != nil {
			logger.WithError(err).Error("Failed to start stats collector")
			os.Exit(1)
		}
	}

	handler = httputil.CORSMiddleware(cfg.Server.CORSOrigins)(handler)
	handler = httputil.RecoveryMiddleware(logger)(handler)
	handler = httputil.LoggingMiddleware(logger)(handler)
	handler = httputil.RequestIDMiddleware(handler)

	apiServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	healthChecker := observability.NewHealthChecker(redisClient)
	healthMux := http.NewServeMux()
	healthMux.HandleFunc("/healthz", healthChecker.Liveness)
	healthMux.HandleFunc("/readyz", healthChecker.Readiness)
	if metrics != nil {
		healthMux.Handle("/metrics", metrics.Handler())
	}
	healthServer := &http.Server{
		Addr:    net.JoinHostPort(cfg.Server.Host, cfg.Server.HealthPort),
		Handler: healthMux,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.WithField("addr", apiServer.Addr).Info("API server listening")
		if err := apiServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		logger.WithField("addr", healthServer.Addr).Info("Health server listening")
		if err := healthServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if collector != nil {
			collector.Stop()
		}
		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Error("API server shutdown error")
		}
		if err := healthServer.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Error("Health server shutdown error")
		}
		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				logger.WithError(err).Error("Redis close error")
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.WithError(err).Error("Server error")
		os.Exit(1)
	}
	logger.Info("Shutdown complete")
}
