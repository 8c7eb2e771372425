package port

import (
	"context"
	"time"

	"github.com/fhuszti/medias-metadata-go/internal/model"
)

type Clock func() time.Time

// RelationReconciler makes the stored relations of a path match the discovered media IDs.
type RelationReconciler interface {
	Reconcile(ctx context.Context, in ReconcileInput) (ReconcileOutput, error)
}
type ReconcileInput struct {
	Path       string
	MediaIDs   []string
	EntityType *string
	EntityID   *int64
}
type ReconcileOutput struct {
	// Metadata may miss entries for media IDs listed in Queued.
	Metadata map[string]*model.Metadata
	Queued   []string
}

// PathRegistrar runs discovery for a path then reconciles it.
type PathRegistrar interface {
	RegisterPath(ctx context.Context, in DiscoveryInput) (ReconcileOutput, error)
}

// MetadataRefresher consumes preload items and refreshes cached metadata.
type MetadataRefresher interface {
	ProcessPreload(ctx context.Context, item model.PreloadItem) error
	Refresh(ctx context.Context, mediaID string) error
}

// WebhookEventHandler applies media lifecycle events to the cache.
type WebhookEventHandler interface {
	HandleEvent(ctx context.Context, ev model.WebhookEvent) error
}

// EntityLifecycle keeps relations in sync with the host's content objects.
type EntityLifecycle interface {
	EntitySaved(ctx context.Context, in EntitySavedInput) (ReconcileOutput, error)
	EntityDeleted(ctx context.Context, entityType string, entityID int64) error
}
type EntitySavedInput struct {
	EntityType string
	EntityID   int64
	Path       string
	MediaIDs   []string
	Markup     string
	IsNew      bool
}

// MetadataGetter returns the cached metadata of one media ID.
type MetadataGetter interface {
	GetMetadata(ctx context.Context, mediaID string) (*model.Metadata, error)
}

// BacklogRefresher enqueues preload items for missing or outdated metadata.
type BacklogRefresher interface {
	RefreshBacklog(ctx context.Context) (int, error)
}

// OrphanPruner removes metadata rows no relation references.
type OrphanPruner interface {
	PruneOrphans(ctx context.Context) (int64, error)
}
