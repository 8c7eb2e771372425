package metadata

import (
	"context"
	"fmt"

	"github.com/fhuszti/medias-metadata-go/internal/logger"
	"github.com/fhuszti/medias-metadata-go/internal/port"
)

type entityLifecycleSrv struct {
	relations   port.RelationRepository
	metadata    port.MetadataRepository
	registrar   port.PathRegistrar
	invalidator port.Invalidator
}

var _ port.EntityLifecycle = (*entityLifecycleSrv)(nil)

// NewEntityLifecycle constructs an EntityLifecycle implementation.
func NewEntityLifecycle(
	relations port.RelationRepository,
	metadata port.MetadataRepository,
	registrar port.PathRegistrar,
	invalidator port.Invalidator,
) port.EntityLifecycle {
	return &entityLifecycleSrv{relations, metadata, registrar, invalidator}
}

// EntitySaved reconciles the entity's path and, for updates, invalidates its rendering.
func (s *entityLifecycleSrv) EntitySaved(ctx context.Context, in port.EntitySavedInput) (port.ReconcileOutput, error) {
	entityType, entityID := in.EntityType, in.EntityID
	out, err := s.registrar.RegisterPath(ctx, port.DiscoveryInput{
		Path:       in.Path,
		EntityType: &entityType,
		EntityID:   &entityID,
		MediaIDs:   in.MediaIDs,
		Markup:     in.Markup,
	})
	if err != nil {
		return out, err
	}

	if !in.IsNew {
		if err := s.invalidator.Invalidate(ctx, []string{in.Path}); err != nil {
			logger.Warnf(ctx, "failed invalidating path %q: %v", in.Path, err)
		}
	}
	return out, nil
}

// EntityDeleted removes every relation owned by the entity and prunes the metadata left orphaned.
func (s *entityLifecycleSrv) EntityDeleted(ctx context.Context, entityType string, entityID int64) error {
	if entityType == "" || entityID <= 0 {
		logger.Warnf(ctx, "%v: type %q id %d, skipping cleanup", ErrEntityIDResolutionFailed, entityType, entityID)
		return ErrEntityIDResolutionFailed
	}

	rels, err := s.relations.ListByEntity(ctx, entityType, entityID)
	if err != nil {
		return fmt.Errorf("failed listing relations of %s #%d: %w", entityType, entityID, err)
	}

	seen := make(map[string]struct{}, len(rels))
	var mediaIDs []string
	for _, rel := range rels {
		if err := s.relations.Delete(ctx, rel.MediaID, rel.Path); err != nil {
			return fmt.Errorf("failed deleting relation %q -> %q: %w", rel.MediaID, rel.Path, err)
		}
		if _, ok := seen[rel.MediaID]; !ok {
			seen[rel.MediaID] = struct{}{}
			mediaIDs = append(mediaIDs, rel.MediaID)
		}
	}

	for _, id := range mediaIDs {
		if _, err := s.metadata.DeleteIfOrphaned(ctx, id); err != nil {
			return fmt.Errorf("failed pruning metadata of media %q: %w", id, err)
		}
	}

	logger.Infof(ctx, "removed %d relation(s) of %s #%d", len(rels), entityType, entityID)
	return nil
}
