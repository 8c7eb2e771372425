package port

import (
	"context"

	"github.com/fhuszti/medias-metadata-go/internal/model"
)

// MetadataRepository defines persistence operations for cached metadata.
type MetadataRepository interface {
	// GetByMediaID returns nil, nil on a miss.
	GetByMediaID(ctx context.Context, mediaID string) (*model.Metadata, error)
	GetByMediaIDs(ctx context.Context, mediaIDs []string) (map[string]*model.Metadata, error)
	// Upsert inserts the row or replaces its value; updated never moves backwards.
	Upsert(ctx context.Context, m *model.Metadata) error
	Delete(ctx context.Context, mediaID string) error
	// DeleteIfOrphaned removes the row only when no relation references the media ID.
	DeleteIfOrphaned(ctx context.Context, mediaID string) (bool, error)
	DeleteOrphaned(ctx context.Context) (int64, error)
}
