package testutil

import (
	"context"
	"database/sql"
	"time"

	"github.com/hibiken/asynq"

	"github.com/fhuszti/medias-metadata-go/internal/fetcher"
	workerHandler "github.com/fhuszti/medias-metadata-go/internal/handler/worker"
	"github.com/fhuszti/medias-metadata-go/internal/logger"
	"github.com/fhuszti/medias-metadata-go/internal/port"
	"github.com/fhuszti/medias-metadata-go/internal/repository/mariadb"
	"github.com/fhuszti/medias-metadata-go/internal/task"
	metadataSvc "github.com/fhuszti/medias-metadata-go/internal/usecase/metadata"
)

// StartWorker starts an asynq worker processing preload and webhook tasks against
// the MariaDB stores and the given metadata API.
// It returns a function to gracefully shut down the worker.
func StartWorker(dbConn *sql.DB, redisAddr, apiURL string, inv port.Invalidator) func() {
	relations := mariadb.NewRelationRepository(dbConn)
	metadata := mariadb.NewMetadataRepository(dbConn)

	cfg := fetcher.DefaultConfig()
	cfg.BaseURL = apiURL
	cfg.Timeout = 2 * time.Second
	f := fetcher.New(cfg, nil)

	refresherSvc := metadataSvc.NewMetadataRefresher(relations, metadata, f, inv, nil, time.Now)
	webhookSvc := metadataSvc.NewWebhookEventHandler(relations, metadata, refresherSvc, inv, nil)

	mux := asynq.NewServeMux()
	mux.Handle(task.TypePreloadMetadata, workerHandler.PreloadMetadataHandler(refresherSvc))
	mux.Handle(task.TypeWebhookEvent, workerHandler.WebhookEventHandler(webhookSvc))

	srv := asynq.NewServer(asynq.RedisClientOpt{Addr: redisAddr}, asynq.Config{
		Concurrency: 5,
		Queues:      map[string]int{task.QueueName: 1},
	})
	if err := srv.Start(mux); err != nil {
		logger.Errorf(context.Background(), "worker did not start: %v", err)
	}

	return func() {
		srv.Shutdown()
	}
}
