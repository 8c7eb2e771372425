package port

import "context"

// Invalidator asks the host application to drop cached renderings of the given paths.
type Invalidator interface {
	Invalidate(ctx context.Context, paths []string) error
}
