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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fhuszti/medias-metadata-go/internal/config"
	"github.com/fhuszti/medias-metadata-go/internal/db"
	"github.com/fhuszti/medias-metadata-go/internal/discovery"
	"github.com/fhuszti/medias-metadata-go/internal/handler/api"
	"github.com/fhuszti/medias-metadata-go/internal/invalidator"
	"github.com/fhuszti/medias-metadata-go/internal/logger"
	"github.com/fhuszti/medias-metadata-go/internal/metrics"
	cMiddleware "github.com/fhuszti/medias-metadata-go/internal/middleware"
	"github.com/fhuszti/medias-metadata-go/internal/renderer"
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

	logger.Init("medias-metadata-api")

	database := initDb(ctx, cfg)
	stores, err := repository.NewStores(ctx, cfg.StoreDriver, database.DB)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialise stores: %v", err)
		os.Exit(1)
	}

	dispatcher := task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword, taskTimeout(cfg))
	defer func() {
		if err := dispatcher.Close(); err != nil {
			logger.Warnf(ctx, "queue client close error: %v", err)
		}
	}()

	inv := invalidator.FromConfig(ctx, cfg)
	registry := initDiscovery(ctx, cfg)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	reconcilerSvc := metadataSvc.NewRelationReconciler(stores.Relations, stores.Metadata, dispatcher, m, time.Now)
	registrarSvc := metadataSvc.NewPathRegistrar(registry, reconcilerSvc)
	lifecycleSvc := metadataSvc.NewEntityLifecycle(stores.Relations, stores.Metadata, registrarSvc, inv)
	getterSvc := metadataSvc.NewMetadataGetter(stores.Metadata)
	rendererSvc := renderer.NewHTTPRenderer()

	r := initRouter(ctx)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Group(func(r chi.Router) {
		r.Use(cMiddleware.WithDSTAuth(cfg.JWTPublicKey))

		r.Post("/relations/reconcile", api.ReconcileHandler(registrarSvc))

		r.With(cMiddleware.WithEntity()).
			Put("/entities/{entityType}/{entityID}", api.EntitySavedHandler(lifecycleSvc))
		r.With(cMiddleware.WithEntity()).
			Delete("/entities/{entityType}/{entityID}", api.EntityDeletedHandler(lifecycleSvc))

		r.With(cMiddleware.WithMediaID()).
			Get("/metadata/{mediaID}", api.GetMetadataHandler(rendererSvc, getterSvc))
	})

	listenRouter(ctx, r, cfg, database)
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

func initRouter(ctx context.Context) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
}

func initDiscovery(ctx context.Context, cfg *config.Settings) *discovery.Registry {
	markup, err := discovery.NewMarkupDiscoverer(cfg.MarkupMediaPattern)
	if err != nil {
		logger.Errorf(ctx, "❌  %v", err)
		os.Exit(1)
	}
	return discovery.NewRegistry(discovery.Reported(), markup)
}

// taskTimeout leaves room for the rate limiter wait and the store writes around the fetch.
func taskTimeout(cfg *config.Settings) time.Duration {
	return cfg.FetchTimeout + 30*time.Second
}

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings, database *db.Database) {
	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.ServerPort), Handler: r}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")

	if err := database.Close(); err != nil {
		logger.Errorf(ctx, "DB close error: %v", err)
		os.Exit(1)
	}
}
