package metadata

import (
	"context"
	"fmt"
	"time"

	"github.com/fhuszti/medias-metadata-go/internal/logger"
	"github.com/fhuszti/medias-metadata-go/internal/metrics"
	"github.com/fhuszti/medias-metadata-go/internal/model"
	"github.com/fhuszti/medias-metadata-go/internal/port"
)

type metadataRefresherSrv struct {
	relations   port.RelationRepository
	metadata    port.MetadataRepository
	fetcher     port.MetadataFetcher
	invalidator port.Invalidator
	metrics     *metrics.Metrics
	now         port.Clock
}

// compile-time check: *metadataRefresherSrv must satisfy port.MetadataRefresher
var _ port.MetadataRefresher = (*metadataRefresherSrv)(nil)

// NewMetadataRefresher constructs a MetadataRefresher implementation.
// m may be nil.
func NewMetadataRefresher(
	relations port.RelationRepository,
	metadata port.MetadataRepository,
	fetcher port.MetadataFetcher,
	invalidator port.Invalidator,
	m *metrics.Metrics,
	now port.Clock,
) port.MetadataRefresher {
	return &metadataRefresherSrv{relations, metadata, fetcher, invalidator, m, now}
}

// ProcessPreload handles one dequeued preload item. It is safe to run again on redelivery.
func (s *metadataRefresherSrv) ProcessPreload(ctx context.Context, item model.PreloadItem) error {
	rels, err := s.relations.ListByMediaID(ctx, item.MediaID)
	if err != nil {
		return fmt.Errorf("failed listing relations of media %q: %w", item.MediaID, err)
	}
	if len(rels) == 0 {
		return s.dropOrphan(ctx, item.MediaID)
	}

	cached, err := s.metadata.GetByMediaID(ctx, item.MediaID)
	if err != nil {
		return fmt.Errorf("failed reading metadata of media %q: %w", item.MediaID, err)
	}
	if cached.SatisfiesRequest(item.RequestedAt) {
		logger.Debugf(ctx, "metadata of media %q already fresher than request at %d", item.MediaID, item.RequestedAt)
		s.metrics.IncPreload(metrics.OutcomeFresh)
		return nil
	}

	return s.fetchAndStore(ctx, item.MediaID)
}

// Refresh fetches the metadata of one media ID without any staleness check.
// A media ID no path references is pruned instead of fetched.
func (s *metadataRefresherSrv) Refresh(ctx context.Context, mediaID string) error {
	rels, err := s.relations.ListByMediaID(ctx, mediaID)
	if err != nil {
		return fmt.Errorf("failed listing relations of media %q: %w", mediaID, err)
	}
	if len(rels) == 0 {
		return s.dropOrphan(ctx, mediaID)
	}
	return s.fetchAndStore(ctx, mediaID)
}

func (s *metadataRefresherSrv) dropOrphan(ctx context.Context, mediaID string) error {
	if _, err := s.metadata.DeleteIfOrphaned(ctx, mediaID); err != nil {
		return fmt.Errorf("failed pruning metadata of media %q: %w", mediaID, err)
	}
	logger.Infof(ctx, "media %q is no longer referenced, skipping fetch", mediaID)
	s.metrics.IncPreload(metrics.OutcomeOrphaned)
	return nil
}

func (s *metadataRefresherSrv) fetchAndStore(ctx context.Context, mediaID string) error {
	start := time.Now()
	value, err := s.fetcher.Fetch(ctx, mediaID)
	s.metrics.ObserveFetch(time.Since(start))
	if err != nil {
		s.metrics.IncPreload(metrics.OutcomeFailed)
		return fmt.Errorf("failed fetching metadata of media %q: %w", mediaID, err)
	}

	now := s.now()
	if err := s.metadata.Upsert(ctx, &model.Metadata{
		MediaID: mediaID,
		Value:   value,
		Created: now,
		Updated: now,
	}); err != nil {
		s.metrics.IncPreload(metrics.OutcomeFailed)
		return fmt.Errorf("%w: metadata of media %q: %v", ErrStoreWriteFailed, mediaID, err)
	}

	// relations may have vanished while the fetch was in flight
	pruned, err := s.metadata.DeleteIfOrphaned(ctx, mediaID)
	if err != nil {
		return fmt.Errorf("failed pruning metadata of media %q: %w", mediaID, err)
	}
	if pruned {
		s.metrics.IncPreload(metrics.OutcomeOrphaned)
		return nil
	}

	rels, err := s.relations.ListByMediaID(ctx, mediaID)
	if err != nil {
		return fmt.Errorf("failed listing relations of media %q: %w", mediaID, err)
	}
	if paths := relationPaths(rels); len(paths) > 0 {
		if err := s.invalidator.Invalidate(ctx, paths); err != nil {
			logger.Warnf(ctx, "failed invalidating %d path(s) for media %q: %v", len(paths), mediaID, err)
		}
	}

	s.metrics.IncPreload(metrics.OutcomeFetched)
	return nil
}
