package metadata

import (
	"context"
	"fmt"

	"github.com/fhuszti/medias-metadata-go/internal/port"
)

type pathRegistrarSrv struct {
	discoverer port.Discoverer
	reconciler port.RelationReconciler
}

var _ port.PathRegistrar = (*pathRegistrarSrv)(nil)

// NewPathRegistrar constructs a PathRegistrar implementation.
func NewPathRegistrar(discoverer port.Discoverer, reconciler port.RelationReconciler) port.PathRegistrar {
	return &pathRegistrarSrv{discoverer, reconciler}
}

// RegisterPath asks the discoverer which media IDs appear on the path then reconciles them.
func (s *pathRegistrarSrv) RegisterPath(ctx context.Context, in port.DiscoveryInput) (port.ReconcileOutput, error) {
	ids, err := s.discoverer.RegisterMediaIDs(ctx, in)
	if err != nil {
		return port.ReconcileOutput{}, fmt.Errorf("failed discovering media of path %q: %w", in.Path, err)
	}

	return s.reconciler.Reconcile(ctx, port.ReconcileInput{
		Path:       in.Path,
		MediaIDs:   ids,
		EntityType: in.EntityType,
		EntityID:   in.EntityID,
	})
}
