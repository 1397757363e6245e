package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/platinummonkey/quill/pkg/api"
	"github.com/platinummonkey/quill/pkg/auth"
	"github.com/platinummonkey/quill/pkg/config"
	"github.com/platinummonkey/quill/pkg/middleware"
	"github.com/platinummonkey/quill/pkg/observability"
	"github.com/platinummonkey/quill/pkg/posts"
	"github.com/platinummonkey/quill/pkg/report"
	"github.com/platinummonkey/quill/pkg/search"
	"github.com/platinummonkey/quill/pkg/storage/sqlstore"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, os.Stdout)

	store, err := sqlstore.New(cfg.Storage)
	if err != nil {
		logger.WithError(err).Error("failed to open storage")
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.InitSchema(ctx); err != nil {
		logger.WithError(err).Error("failed to initialize schema")
		os.Exit(1)
	}

	var metrics *observability.Metrics
	if cfg.Observability.MetricsEnabled {
		metrics = observability.NewMetrics(prometheus.NewRegistry())
	}

	// Redis when configured, in-process LRU otherwise
	var (
		cache       search.Cache
		redisClient *redis.Client
	)
	if cfg.Storage.CacheEnabled && cfg.Storage.RedisURL != "" {
		redisCache, err := search.NewRedisCache(cfg.Storage)
		if err != nil {
			logger.WithError(err).Error("failed to connect to redis")
			os.Exit(1)
		}
		defer redisCache.Close()
		cache = redisCache
		redisClient = redisCache.Client()
		logger.Info("search cache backed by redis")
	} else {
		cache = search.NewLocalCache(cfg.Storage.LocalCacheSize, cfg.Storage.SearchCacheTTL)
		logger.Info("search cache backed by in-process LRU")
	}

	searchService := search.NewService(store, cache, metrics, logger)

	mailer := report.NewLogMailer(logger)
	dispatcher := report.NewDispatcher(store, mailer, cfg.Report.Workers, cfg.Report.QueueSize, metrics, logger)
	dispatcher.Start()

	postService := posts.NewService(store, searchService, dispatcher, logger)
	postHandlers := posts.NewHandlers(postService)

	resolver := auth.NewResolver(store)
	authMW := middleware.NewAuth(resolver)

	health := observability.NewHealthChecker(store.DB(), redisClient)

	server := api.NewServer(postHandlers, authMW, health, metrics, logger)

	httpServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      server,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.WithField("addr", httpServer.Addr).Info("starting Quill API server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("server failed")
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	logger.Infof("received signal %s, starting graceful shutdown", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("HTTP server shutdown failed")
	}

	// Drain queued report jobs before closing storage
	dispatcher.Stop()
	logger.Info("shutdown complete")
}
