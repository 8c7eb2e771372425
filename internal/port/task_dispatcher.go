package port

import (
	"context"

	"github.com/fhuszti/medias-metadata-go/internal/model"
)

// TaskDispatcher enqueues asynchronous metadata tasks.
type TaskDispatcher interface {
	// EnqueuePreloadMetadata reports whether a new task was added; false means one was already pending.
	EnqueuePreloadMetadata(ctx context.Context, item model.PreloadItem) (bool, error)
	EnqueueWebhookEvent(ctx context.Context, ev model.WebhookEvent) error
}
