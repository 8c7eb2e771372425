package model

const (
	EventMediaAvailable      = "media_available"
	EventConversionsComplete = "conversions_complete"
	EventMediaUpdated        = "media_updated"
	EventMediaReuploaded     = "media_reuploaded"
	EventMediaDeleted        = "media_deleted"
)

// WebhookEvent is a media lifecycle notification already parsed by the host.
type WebhookEvent struct {
	Event   string `json:"event"`
	MediaID string `json:"media_id"`
}

// RequestsRefresh reports whether the event means the metadata may have changed.
func (e WebhookEvent) RequestsRefresh() bool {
	switch e.Event {
	case EventMediaAvailable, EventConversionsComplete, EventMediaUpdated:
		return true
	}
	return false
}

// RequestsEviction reports whether the asset is gone or not fetchable yet.
func (e WebhookEvent) RequestsEviction() bool {
	return e.Event == EventMediaReuploaded || e.Event == EventMediaDeleted
}
