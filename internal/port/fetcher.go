package port

import (
	"context"
	"encoding/json"
)

// MetadataFetcher downloads the metadata document of one media ID from the external API.
type MetadataFetcher interface {
	Fetch(ctx context.Context, mediaID string) (json.RawMessage, error)
}
