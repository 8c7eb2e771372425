package metadata

import (
	"context"
	"fmt"

	"github.com/fhuszti/medias-metadata-go/internal/logger"
	"github.com/fhuszti/medias-metadata-go/internal/metrics"
	"github.com/fhuszti/medias-metadata-go/internal/model"
	"github.com/fhuszti/medias-metadata-go/internal/port"
)

type relationReconcilerSrv struct {
	relations port.RelationRepository
	metadata  port.MetadataRepository
	tasks     port.TaskDispatcher
	metrics   *metrics.Metrics
	now       port.Clock
}

// compile-time check: *relationReconcilerSrv must satisfy port.RelationReconciler
var _ port.RelationReconciler = (*relationReconcilerSrv)(nil)

// NewRelationReconciler constructs a RelationReconciler implementation.
func NewRelationReconciler(
	relations port.RelationRepository,
	metadata port.MetadataRepository,
	tasks port.TaskDispatcher,
	m *metrics.Metrics,
	now port.Clock,
) port.RelationReconciler {
	return &relationReconcilerSrv{relations, metadata, tasks, m, now}
}

// Reconcile makes the relations stored for in.Path match in.MediaIDs, prunes metadata left
// without relation and enqueues a preload for every current media ID missing from the cache.
func (s *relationReconcilerSrv) Reconcile(ctx context.Context, in port.ReconcileInput) (port.ReconcileOutput, error) {
	out := port.ReconcileOutput{Metadata: map[string]*model.Metadata{}}
	if in.Path == "" {
		return out, fmt.Errorf("reconcile: path is required")
	}
	current := dedupeIDs(in.MediaIDs)

	existing, err := s.relations.ListByPath(ctx, in.Path)
	if err != nil {
		return out, fmt.Errorf("failed listing relations of path %q: %w", in.Path, err)
	}

	for _, id := range staleIDs(existing, current) {
		if err := s.relations.Delete(ctx, id, in.Path); err != nil {
			return out, fmt.Errorf("failed deleting relation %q -> %q: %w", id, in.Path, err)
		}
		s.metrics.AddRelationChanges(metrics.ChangeDeleted, 1)
		if err := s.prune(ctx, id); err != nil {
			return out, err
		}
	}

	if len(current) == 0 {
		return out, nil
	}

	known := make(map[string]struct{}, len(existing))
	for _, rel := range existing {
		known[rel.MediaID] = struct{}{}
	}
	now := s.now()
	for _, id := range current {
		if _, ok := known[id]; ok {
			continue
		}
		rel := &model.MediaRelation{
			MediaID:    id,
			Path:       in.Path,
			EntityType: in.EntityType,
			EntityID:   in.EntityID,
			Created:    now,
		}
		if err := s.relations.Create(ctx, rel); err != nil {
			logger.Errorf(ctx, "%v: relation %q -> %q: %v", ErrStoreWriteFailed, id, in.Path, err)
			continue
		}
		s.metrics.AddRelationChanges(metrics.ChangeCreated, 1)
	}

	cached, err := s.metadata.GetByMediaIDs(ctx, current)
	if err != nil {
		return out, fmt.Errorf("failed reading cached metadata for path %q: %w", in.Path, err)
	}

	for _, id := range current {
		if m, ok := cached[id]; ok && m != nil {
			out.Metadata[id] = m
			continue
		}
		item := model.PreloadItem{MediaID: id, RequestedAt: now.Unix()}
		added, err := s.tasks.EnqueuePreloadMetadata(ctx, item)
		if err != nil {
			logger.Warnf(ctx, "failed to enqueue preload task for media %q: %v", id, err)
			continue
		}
		if added {
			s.metrics.IncPreloadEnqueued()
		}
		out.Queued = append(out.Queued, id)
	}

	return out, nil
}

func (s *relationReconcilerSrv) prune(ctx context.Context, mediaID string) error {
	pruned, err := s.metadata.DeleteIfOrphaned(ctx, mediaID)
	if err != nil {
		return fmt.Errorf("failed pruning metadata of media %q: %w", mediaID, err)
	}
	if pruned {
		logger.Debugf(ctx, "pruned orphaned metadata of media %q", mediaID)
	}
	return nil
}
