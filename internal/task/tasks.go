package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/fhuszti/medias-metadata-go/internal/model"
	"github.com/fhuszti/medias-metadata-go/internal/validation"
)

const (
	TypePreloadMetadata = "metadata:preload"
	TypeWebhookEvent    = "metadata:webhook_event"

	QueueName = "metadata"
)

type PreloadMetadataPayload struct {
	MediaID     string `json:"media_id" validate:"required,media_id"`
	RequestedAt int64  `json:"requested_at" validate:"gt=0"`
}

type WebhookEventPayload struct {
	Event   string `json:"event" validate:"required"`
	MediaID string `json:"media_id" validate:"required,media_id"`
}

// PreloadTaskID is shared by every preload of the same media, so at most one is pending at a time.
func PreloadTaskID(mediaID string) string {
	return "preload:" + mediaID
}

// NewPreloadMetadataTask creates an Asynq task refreshing the metadata of one media.
func NewPreloadMetadataTask(item model.PreloadItem) (*asynq.Task, error) {
	data, err := json.Marshal(PreloadMetadataPayload{MediaID: item.MediaID, RequestedAt: item.RequestedAt})
	if err != nil {
		return nil, fmt.Errorf("could not marshal preload-metadata payload: %w", err)
	}
	return asynq.NewTask(TypePreloadMetadata, data), nil
}

// ParsePreloadMetadataPayload parses and validates the task payload.
func ParsePreloadMetadataPayload(t *asynq.Task) (model.PreloadItem, error) {
	var p PreloadMetadataPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return model.PreloadItem{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	if err := validation.ValidateStruct(p); err != nil {
		return model.PreloadItem{}, fmt.Errorf("invalid payload: %w", err)
	}
	return model.PreloadItem{MediaID: p.MediaID, RequestedAt: p.RequestedAt}, nil
}

// NewWebhookEventTask creates an Asynq task carrying one parsed webhook event.
func NewWebhookEventTask(ev model.WebhookEvent) (*asynq.Task, error) {
	data, err := json.Marshal(WebhookEventPayload{Event: ev.Event, MediaID: ev.MediaID})
	if err != nil {
		return nil, fmt.Errorf("could not marshal webhook-event payload: %w", err)
	}
	return asynq.NewTask(TypeWebhookEvent, data), nil
}

func ParseWebhookEventPayload(t *asynq.Task) (model.WebhookEvent, error) {
	var p WebhookEventPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return model.WebhookEvent{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	if err := validation.ValidateStruct(p); err != nil {
		return model.WebhookEvent{}, fmt.Errorf("invalid payload: %w", err)
	}
	return model.WebhookEvent{Event: p.Event, MediaID: p.MediaID}, nil
}
