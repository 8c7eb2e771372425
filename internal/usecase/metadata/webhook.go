package metadata

import (
	"context"
	"fmt"

	"github.com/fhuszti/medias-metadata-go/internal/logger"
	"github.com/fhuszti/medias-metadata-go/internal/metrics"
	"github.com/fhuszti/medias-metadata-go/internal/model"
	"github.com/fhuszti/medias-metadata-go/internal/port"
)

type webhookEventSrv struct {
	relations   port.RelationRepository
	metadata    port.MetadataRepository
	refresher   port.MetadataRefresher
	invalidator port.Invalidator
	metrics     *metrics.Metrics
}

var _ port.WebhookEventHandler = (*webhookEventSrv)(nil)

// NewWebhookEventHandler constructs a WebhookEventHandler implementation.
func NewWebhookEventHandler(
	relations port.RelationRepository,
	metadata port.MetadataRepository,
	refresher port.MetadataRefresher,
	invalidator port.Invalidator,
	m *metrics.Metrics,
) port.WebhookEventHandler {
	return &webhookEventSrv{relations, metadata, refresher, invalidator, m}
}

// HandleEvent refreshes or evicts the metadata of the event's media ID. Unknown events are ignored.
func (s *webhookEventSrv) HandleEvent(ctx context.Context, ev model.WebhookEvent) error {
	switch {
	case ev.RequestsRefresh():
		s.metrics.IncWebhookEvent(ev.Event)
		return s.refresher.Refresh(ctx, ev.MediaID)
	case ev.RequestsEviction():
		s.metrics.IncWebhookEvent(ev.Event)
		return s.evict(ctx, ev.MediaID)
	default:
		logger.Debugf(ctx, "ignoring webhook event %q for media %q", ev.Event, ev.MediaID)
		return nil
	}
}

func (s *webhookEventSrv) evict(ctx context.Context, mediaID string) error {
	rels, err := s.relations.ListByMediaID(ctx, mediaID)
	if err != nil {
		return fmt.Errorf("failed listing relations of media %q: %w", mediaID, err)
	}

	if err := s.metadata.Delete(ctx, mediaID); err != nil {
		return fmt.Errorf("failed deleting metadata of media %q: %w", mediaID, err)
	}

	if paths := relationPaths(rels); len(paths) > 0 {
		if err := s.invalidator.Invalidate(ctx, paths); err != nil {
			logger.Warnf(ctx, "failed invalidating %d path(s) for media %q: %v", len(paths), mediaID, err)
		}
	}
	return nil
}
