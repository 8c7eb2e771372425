package mock

import (
	"context"

	"github.com/fhuszti/medias-metadata-go/internal/model"
)

// MockDispatcher implements task dispatching for tests.
type MockDispatcher struct {
	PreloadCalled bool
	PreloadItems  []model.PreloadItem
	PreloadErr    error
	// Pending lists media IDs whose preload is reported as already queued.
	Pending map[string]bool

	WebhookCalled bool
	WebhookEvents []model.WebhookEvent
	WebhookErr    error
}

func (m *MockDispatcher) EnqueuePreloadMetadata(ctx context.Context, item model.PreloadItem) (bool, error) {
	m.PreloadCalled = true
	m.PreloadItems = append(m.PreloadItems, item)
	if m.PreloadErr != nil {
		return false, m.PreloadErr
	}
	return !m.Pending[item.MediaID], nil
}

func (m *MockDispatcher) EnqueueWebhookEvent(ctx context.Context, ev model.WebhookEvent) error {
	m.WebhookCalled = true
	m.WebhookEvents = append(m.WebhookEvents, ev)
	return m.WebhookErr
}
