package port

import (
	"context"
	"time"

	"github.com/fhuszti/medias-metadata-go/internal/model"
)

// RelationRepository defines persistence operations for media relations.
// Create must be a no-op when the (media_id, path) pair already exists.
type RelationRepository interface {
	ListByPath(ctx context.Context, path string) ([]model.MediaRelation, error)
	ListByMediaID(ctx context.Context, mediaID string) ([]model.MediaRelation, error)
	ListByEntity(ctx context.Context, entityType string, entityID int64) ([]model.MediaRelation, error)
	Create(ctx context.Context, rel *model.MediaRelation) error
	Delete(ctx context.Context, mediaID, path string) error
	ListStaleMediaIDs(ctx context.Context, updatedBefore time.Time) ([]string, error)
}
