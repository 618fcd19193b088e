package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hackgods/hospital-dashboard/internal/api"
	"github.com/hackgods/hospital-dashboard/internal/config"
	"github.com/hackgods/hospital-dashboard/internal/dashboard"
	"github.com/hackgods/hospital-dashboard/internal/db"
	"github.com/hackgods/hospital-dashboard/internal/logging"
	redisclient "github.com/hackgods/hospital-dashboard/internal/redis"
	"github.com/hackgods/hospital-dashboard/internal/tables"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, "api-server")
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("api-server starting up",
		zap.String("env", cfg.Env),
		zap.String("http_port", cfg.HTTPPort),
		zap.String("table_source", cfg.TableSource),
		zap.String("version", version),
	)

	loc, err := cfg.Location()
	if err != nil {
		logger.Fatal("timezone", zap.Error(err))
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	routerCfg := api.RouterConfig{
		Logger:  logger,
		Env:     cfg.Env,
		Version: version,
	}

	var source tables.Source
	switch cfg.TableSource {
	case config.SourcePostgres:
		pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
		pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
		cancelPg()
		if err != nil {
			logger.Fatal("postgres connection error", zap.Error(err))
		}
		defer pgPool.Close()
		logger.Info("connected to Postgres")

		source = tables.NewPgSource(pgPool)
		routerCfg.Postgres = pgPool
	default:
		source = tables.NewHTTPSource(cfg.TableAPIBaseURL, cfg.TableFetchTimeout)
		logger.Info("reading tables over HTTP", zap.String("base_url", cfg.TableAPIBaseURL))
	}

	var recorder tables.FailureRecorder
	if cfg.RedisEnabled() {
		rdb, err := redisclient.Connect(rootCtx, redisclient.Options{
			Addr:     cfg.RedisAddr,
			Username: cfg.RedisUsername,
			Password: cfg.RedisPassword,
		})
		if err != nil {
			// Failure tracking is optional; dashboards work without it.
			logger.Warn("redis unavailable, table failures will not be tracked", zap.Error(err))
		} else {
			defer func() {
				if err := rdb.Close(); err != nil {
					logger.Warn("error closing redis", zap.Error(err))
				}
			}()
			tracker := redisclient.NewFailureTracker(rdb, cfg.FailureWindow)
			recorder = tracker
			routerCfg.Failures = tracker
			logger.Info("connected to Redis", zap.Duration("failure_window", cfg.FailureWindow))
		}
	}

	client := tables.NewClient(source, logger.Named("tables"), recorder)
	routerCfg.Dashboards = dashboard.NewService(client, logger.Named("dashboard"), dashboard.WithLocation(loc))

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           api.NewRouter(routerCfg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server error", zap.Error(err))
		}
	case <-rootCtx.Done():
	}

	logger.Info("shutting down api-server", zap.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
