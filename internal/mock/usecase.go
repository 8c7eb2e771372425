package mock

import (
	"context"

	"github.com/fhuszti/medias-metadata-go/internal/model"
	"github.com/fhuszti/medias-metadata-go/internal/port"
)

// MockPathRegistrar implements port.PathRegistrar for tests.
type MockPathRegistrar struct {
	Out port.ReconcileOutput
	Err error

	Called bool
	In     port.DiscoveryInput
}

func (m *MockPathRegistrar) RegisterPath(ctx context.Context, in port.DiscoveryInput) (port.ReconcileOutput, error) {
	m.Called = true
	m.In = in
	return m.Out, m.Err
}

// MockReconciler implements port.RelationReconciler for tests.
type MockReconciler struct {
	Out port.ReconcileOutput
	Err error

	Called bool
	In     port.ReconcileInput
}

func (m *MockReconciler) Reconcile(ctx context.Context, in port.ReconcileInput) (port.ReconcileOutput, error) {
	m.Called = true
	m.In = in
	return m.Out, m.Err
}

// MockRefresher implements port.MetadataRefresher for tests.
type MockRefresher struct {
	PreloadErr error
	RefreshErr error

	PreloadCalled bool
	Item          model.PreloadItem
	RefreshCalled bool
	RefreshedID   string
}

func (m *MockRefresher) ProcessPreload(ctx context.Context, item model.PreloadItem) error {
	m.PreloadCalled = true
	m.Item = item
	return m.PreloadErr
}

func (m *MockRefresher) Refresh(ctx context.Context, mediaID string) error {
	m.RefreshCalled = true
	m.RefreshedID = mediaID
	return m.RefreshErr
}

// MockWebhookHandler implements port.WebhookEventHandler for tests.
type MockWebhookHandler struct {
	Err    error
	Called bool
	Event  model.WebhookEvent
}

func (m *MockWebhookHandler) HandleEvent(ctx context.Context, ev model.WebhookEvent) error {
	m.Called = true
	m.Event = ev
	return m.Err
}

// MockEntityLifecycle implements port.EntityLifecycle for tests.
type MockEntityLifecycle struct {
	SavedOut  port.ReconcileOutput
	SavedErr  error
	DeleteErr error

	SavedCalled   bool
	SavedIn       port.EntitySavedInput
	DeletedCalled bool
	DeletedType   string
	DeletedID     int64
}

func (m *MockEntityLifecycle) EntitySaved(ctx context.Context, in port.EntitySavedInput) (port.ReconcileOutput, error) {
	m.SavedCalled = true
	m.SavedIn = in
	return m.SavedOut, m.SavedErr
}

func (m *MockEntityLifecycle) EntityDeleted(ctx context.Context, entityType string, entityID int64) error {
	m.DeletedCalled = true
	m.DeletedType = entityType
	m.DeletedID = entityID
	return m.DeleteErr
}

// MockMetadataGetter implements port.MetadataGetter for tests.
type MockMetadataGetter struct {
	Out    *model.Metadata
	Err    error
	Called bool
}

func (m *MockMetadataGetter) GetMetadata(ctx context.Context, mediaID string) (*model.Metadata, error) {
	m.Called = true
	return m.Out, m.Err
}
