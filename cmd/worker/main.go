package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/fhuszti/medias-metadata-go/internal/config"
	"github.com/fhuszti/medias-metadata-go/internal/db"
	"github.com/fhuszti/medias-metadata-go/internal/fetcher"
	workerHandler "github.com/fhuszti/medias-metadata-go/internal/handler/worker"
	"github.com/fhuszti/medias-metadata-go/internal/invalidator"
	"github.com/fhuszti/medias-metadata-go/internal/logger"
	"github.com/fhuszti/medias-metadata-go/internal/metrics"
	"github.com/fhuszti/medias-metadata-go/internal/repository"
	"github.com/fhuszti/medias-metadata-go/internal/task"
	metadataSvc "github.com/fhuszti/medias-metadata-go/internal/usecase/metadata"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init("medias-metadata-worker")

	database := initDb(ctx, cfg)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Warnf(ctx, "DB close error: %v", err)
		}
	}()

	stores, err := repository.NewStores(ctx, cfg.StoreDriver, database.DB)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialise stores: %v", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	f := fetcher.New(fetcher.Config{
		BaseURL:   cfg.MetadataAPIBaseURL,
		Params:    cfg.MetadataAPIParams,
		Token:     cfg.MetadataAPIToken,
		Timeout:   cfg.FetchTimeout,
		RateLimit: rate.Limit(cfg.FetchRateLimit),
		RateBurst: cfg.FetchRateBurst,
		MaxBytes:  cfg.FetchMaxBytes,
	}, nil)
	inv := invalidator.FromConfig(ctx, cfg)

	refresherSvc := metadataSvc.NewMetadataRefresher(stores.Relations, stores.Metadata, f, inv, m, time.Now)
	webhookSvc := metadataSvc.NewWebhookEventHandler(stores.Relations, stores.Metadata, refresherSvc, inv, m)

	mux := asynq.NewServeMux()
	mux.Handle(task.TypePreloadMetadata, workerHandler.PreloadMetadataHandler(refresherSvc))
	mux.Handle(task.TypeWebhookEvent, workerHandler.WebhookEventHandler(webhookSvc))

	runWorker(ctx, mux, reg, cfg)
}

func initDb(ctx context.Context, cfg *config.Settings) *db.Database {
	logger.Infof(ctx, "initialising %s database...", cfg.StoreDriver)

	database, err := db.Open(cfg.StoreDriver, cfg.MariaDB(), cfg.SQLite())
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	return database
}

func runWorker(ctx context.Context, mux *asynq.ServeMux, reg *prometheus.Registry, cfg *config.Settings) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}, asynq.Config{
		Concurrency:     cfg.WorkerConcurrency,
		Queues:          map[string]int{task.QueueName: 1},
		ShutdownTimeout: 30 * time.Second,
	})

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	metricsSrv := &http.Server{Addr: ":" + strconv.Itoa(cfg.MetricsPort), Handler: metricsMux}

	var eg errgroup.Group
	eg.Go(func() error {
		if err := srv.Start(mux); err != nil {
			stop()
			return err
		}
		logger.Info(ctx, "🚀 Worker started")
		<-ctx.Done()
		logger.Info(ctx, "🛑 Shutdown signal received, exiting…")
		// stop accepting new tasks, finish in-flight
		srv.Shutdown()
		return nil
	})
	eg.Go(func() error {
		logger.Infof(ctx, "🚀 Metrics listening on %s", metricsSrv.Addr)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			stop()
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return metricsSrv.Shutdown(shutdownCtx)
	})

	if err := eg.Wait(); err != nil {
		logger.Errorf(ctx, "❌  Worker failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Worker gracefully stopped")
}
