package metadata

import (
	"context"
	"time"

	"github.com/fhuszti/medias-metadata-go/internal/logger"
	"github.com/fhuszti/medias-metadata-go/internal/model"
	"github.com/fhuszti/medias-metadata-go/internal/port"
)

type backlogRefresherSrv struct {
	relations port.RelationRepository
	tasks     port.TaskDispatcher
	maxAge    time.Duration
	now       port.Clock
}

// compile-time check: *backlogRefresherSrv must satisfy port.BacklogRefresher
var _ port.BacklogRefresher = (*backlogRefresherSrv)(nil)

// NewBacklogRefresher constructs a BacklogRefresher implementation.
func NewBacklogRefresher(relations port.RelationRepository, tasks port.TaskDispatcher, maxAge time.Duration, now port.Clock) port.BacklogRefresher {
	return &backlogRefresherSrv{relations, tasks, maxAge, now}
}

// RefreshBacklog enqueues a preload for every referenced media ID whose metadata is missing
// or older than maxAge. It returns the number of newly enqueued items; media with a preload
// already pending are not counted.
func (s *backlogRefresherSrv) RefreshBacklog(ctx context.Context) (int, error) {
	now := s.now()
	ids, err := s.relations.ListStaleMediaIDs(ctx, now.Add(-s.maxAge))
	if err != nil {
		return 0, err
	}

	if len(ids) == 0 {
		logger.Info(ctx, "no media metadata found to refresh")
		return 0, nil
	}

	queued, pending := 0, 0
	for _, id := range ids {
		item := model.PreloadItem{MediaID: id, RequestedAt: now.Unix()}
		added, err := s.tasks.EnqueuePreloadMetadata(ctx, item)
		if err != nil {
			logger.Warnf(ctx, "failed to enqueue preload task for media %q: %v", id, err)
			continue
		}
		if !added {
			pending++
			continue
		}
		queued++
	}
	if pending > 0 {
		logger.Infof(ctx, "%d preload(s) already pending", pending)
	}
	return queued, nil
}

type orphanPrunerSrv struct {
	metadata port.MetadataRepository
}

var _ port.OrphanPruner = (*orphanPrunerSrv)(nil)

// NewOrphanPruner constructs an OrphanPruner implementation.
func NewOrphanPruner(metadata port.MetadataRepository) port.OrphanPruner {
	return &orphanPrunerSrv{metadata}
}

func (s *orphanPrunerSrv) PruneOrphans(ctx context.Context) (int64, error) {
	n, err := s.metadata.DeleteOrphaned(ctx)
	if err != nil {
		return 0, err
	}
	logger.Infof(ctx, "pruned %d orphaned metadata row(s)", n)
	return n, nil
}
