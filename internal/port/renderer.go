package port

import "context"

// HTTPRenderer returns the JSON representation of cached metadata and an ETag derived from it.
type HTTPRenderer interface {
	RenderMetadata(ctx context.Context, getter MetadataGetter, mediaID string) ([]byte, string, error)
}
