package port

import "context"

// DiscoveryInput describes the path being viewed or saved.
// MediaIDs holds the identifiers the host already resolved, Markup the rendered body if any.
type DiscoveryInput struct {
	Path       string
	EntityType *string
	EntityID   *int64
	MediaIDs   []string
	Markup     string
}

// Discoverer reports the media IDs appearing on a path.
type Discoverer interface {
	RegisterMediaIDs(ctx context.Context, in DiscoveryInput) ([]string, error)
}
