package task

import (
	"context"
	"errors"
	"time"

	"github.com/hibiken/asynq"

	"github.com/fhuszti/medias-metadata-go/internal/logger"
	"github.com/fhuszti/medias-metadata-go/internal/model"
	"github.com/fhuszti/medias-metadata-go/internal/port"
)

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type Dispatcher struct {
	client  enqueuer
	timeout time.Duration
}

// compile-time check
var _ port.TaskDispatcher = (*Dispatcher)(nil)

// NewDispatcher connects to the queue. timeout bounds one task's processing
// and should exceed the fetch timeout.
func NewDispatcher(addr, password string, timeout time.Duration) *Dispatcher {
	c := asynq.NewClient(asynq.RedisClientOpt{Addr: addr, Password: password})
	return &Dispatcher{client: c, timeout: timeout}
}

func (d *Dispatcher) Close() error {
	if c, ok := d.client.(*asynq.Client); ok {
		return c.Close()
	}
	return nil
}

// EnqueuePreloadMetadata is a no-op when a preload for the same media is already pending.
// Failed preloads are not retried.
func (d *Dispatcher) EnqueuePreloadMetadata(ctx context.Context, item model.PreloadItem) (bool, error) {
	t, err := NewPreloadMetadataTask(item)
	if err != nil {
		return false, err
	}
	_, err = d.client.EnqueueContext(ctx, t,
		asynq.Queue(QueueName),
		asynq.TaskID(PreloadTaskID(item.MediaID)),
		asynq.MaxRetry(0),
		asynq.Timeout(d.timeout),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) || errors.Is(err, asynq.ErrDuplicateTask) {
		logger.Debugf(ctx, "preload of media %q already pending", item.MediaID)
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (d *Dispatcher) EnqueueWebhookEvent(ctx context.Context, ev model.WebhookEvent) error {
	t, err := NewWebhookEventTask(ev)
	if err != nil {
		return err
	}
	_, err = d.client.EnqueueContext(ctx, t,
		asynq.Queue(QueueName),
		asynq.MaxRetry(0),
		asynq.Timeout(d.timeout),
	)
	return err
}
