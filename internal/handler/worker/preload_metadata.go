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

// PreloadMetadataHandler handles a preload-metadata task.
// A failed preload is logged and dropped: the task is acknowledged so its
// ID is released and a later page view can queue it again.
func PreloadMetadataHandler(svc port.MetadataRefresher) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		item, err := task.ParsePreloadMetadataPayload(t)
		if err != nil {
			logger.Errorf(ctx, "❌  Invalid preload task: %v", err)
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		ctx = api_context.WithTaskID(ctx, task.PreloadTaskID(item.MediaID))

		if err := svc.ProcessPreload(ctx, item); err != nil {
			logger.Errorf(ctx, "❌  Failed to preload metadata of media %q: %v", item.MediaID, err)
			return nil
		}

		logger.Infof(ctx, "✅  Processed preload of media %q", item.MediaID)
		return nil
	}
}
