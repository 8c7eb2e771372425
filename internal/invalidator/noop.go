package invalidator

import (
	"context"

	"github.com/fhuszti/medias-metadata-go/internal/port"
)

type NoopInvalidator struct{}

// compile-time check: *NoopInvalidator must satisfy port.Invalidator
var _ port.Invalidator = (*NoopInvalidator)(nil)

func NewNoop() *NoopInvalidator {
	return &NoopInvalidator{}
}

func (n *NoopInvalidator) Invalidate(ctx context.Context, paths []string) error { return nil }
