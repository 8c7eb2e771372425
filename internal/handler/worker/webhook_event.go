package worker

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/fhuszti/medias-metadata-go/internal/api_context"
	"github.com/fhuszti/medias-metadata-go/internal/logger"
	"github.com/fhuszti/medias-metadata-go/internal/port"
	"github.com/fhuszti/medias-metadata-go/internal/task"
)

// WebhookEventHandler applies a queued media lifecycle event.
func WebhookEventHandler(svc port.WebhookEventHandler) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		ev, err := task.ParseWebhookEventPayload(t)
		if err != nil {
			logger.Errorf(ctx, "❌  Invalid webhook task: %v", err)
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		if id, ok := asynq.GetTaskID(ctx); ok {
			ctx = api_context.WithTaskID(ctx, id)
		}

		if err := svc.HandleEvent(ctx, ev); err != nil {
			logger.Errorf(ctx, "❌  Failed to handle %s event for media %q: %v", ev.Event, ev.MediaID, err)
			return nil
		}

		logger.Infof(ctx, "✅  Handled %s event for media %q", ev.Event, ev.MediaID)
		return nil
	}
}
