package task

import (
	"context"

	"github.com/fhuszti/medias-metadata-go/internal/model"
	"github.com/fhuszti/medias-metadata-go/internal/port"
)

type NoopDispatcher struct{}

var _ port.TaskDispatcher = (*NoopDispatcher)(nil)

func NewNoopDispatcher() *NoopDispatcher { return &NoopDispatcher{} }

func (d *NoopDispatcher) EnqueuePreloadMetadata(ctx context.Context, item model.PreloadItem) (bool, error) {
	return false, nil
}

func (d *NoopDispatcher) EnqueueWebhookEvent(ctx context.Context, ev model.WebhookEvent) error {
	return nil
}
