package sqlite_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fhuszti/medias-metadata-go/internal/db"
	"github.com/fhuszti/medias-metadata-go/internal/discovery"
	"github.com/fhuszti/medias-metadata-go/internal/mock"
	"github.com/fhuszti/medias-metadata-go/internal/model"
	"github.com/fhuszti/medias-metadata-go/internal/port"
	"github.com/fhuszti/medias-metadata-go/internal/repository/sqlite"
	"github.com/fhuszti/medias-metadata-go/internal/usecase/metadata"
)

type harness struct {
	rels       *sqlite.RelationRepository
	md         *sqlite.MetadataRepository
	tasks      *mock.MockDispatcher
	fetcher    *mock.MockFetcher
	inv        *mock.MockInvalidator
	reconciler port.RelationReconciler
	refresher  port.MetadataRefresher
	webhooks   port.WebhookEventHandler
	now        time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	database, err := db.NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, sqlite.ApplySchema(context.Background(), database.DB))

	h := &harness{
		rels:    sqlite.NewRelationRepository(database.DB),
		md:      sqlite.NewMetadataRepository(database.DB),
		tasks:   &mock.MockDispatcher{},
		fetcher: &mock.MockFetcher{Values: map[string]json.RawMessage{}},
		inv:     &mock.MockInvalidator{},
		now:     time.Unix(1700000000, 0).UTC(),
	}
	clock := func() time.Time { return h.now }
	h.reconciler = metadata.NewRelationReconciler(h.rels, h.md, h.tasks, nil, clock)
	h.refresher = metadata.NewMetadataRefresher(h.rels, h.md, h.fetcher, h.inv, nil, clock)
	h.webhooks = metadata.NewWebhookEventHandler(h.rels, h.md, h.refresher, h.inv, nil)
	return h
}

func (h *harness) mediaOf(t *testing.T, path string) []string {
	rels, err := h.rels.ListByPath(context.Background(), path)
	require.NoError(t, err)
	var ids []string
	for _, r := range rels {
		ids = append(ids, r.MediaID)
	}
	return ids
}

func TestScenario_ReconcileThenPreload(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	out, err := h.reconciler.Reconcile(ctx, port.ReconcileInput{Path: "/a", MediaIDs: []string{"m1", "m2"}})
	require.NoError(t, err)
	assert.Empty(t, out.Metadata)
	assert.Equal(t, []string{"m1", "m2"}, h.mediaOf(t, "/a"))
	require.Len(t, h.tasks.PreloadItems, 2)

	h.fetcher.Values["m1"] = json.RawMessage(`{"title":"first"}`)
	h.now = h.now.Add(time.Second)
	require.NoError(t, h.refresher.ProcessPreload(ctx, h.tasks.PreloadItems[0]))

	row, err := h.md.GetByMediaID(ctx, "m1")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.True(t, row.Updated.Equal(h.now))
	require.Len(t, h.inv.Calls, 1)
	assert.Equal(t, []string{"/a"}, h.inv.Calls[0])

	// redelivery of the same item is satisfied by the stored row
	require.NoError(t, h.refresher.ProcessPreload(ctx, h.tasks.PreloadItems[0]))
	assert.Len(t, h.fetcher.Calls, 1)

	// second reconciliation returns the cached row and only re-queues the gap
	out, err = h.reconciler.Reconcile(ctx, port.ReconcileInput{Path: "/a", MediaIDs: []string{"m1", "m2"}})
	require.NoError(t, err)
	assert.Contains(t, out.Metadata, "m1")
	assert.Equal(t, []string{"m2"}, out.Queued)
}

func TestScenario_ShrinkingPathPrunesOrphans(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	_, err := h.reconciler.Reconcile(ctx, port.ReconcileInput{Path: "/a", MediaIDs: []string{"m1", "m2"}})
	require.NoError(t, err)
	for _, item := range h.tasks.PreloadItems {
		require.NoError(t, h.refresher.ProcessPreload(ctx, item))
	}

	_, err = h.reconciler.Reconcile(ctx, port.ReconcileInput{Path: "/a", MediaIDs: []string{"m1"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"m1"}, h.mediaOf(t, "/a"))

	m2, err := h.md.GetByMediaID(ctx, "m2")
	require.NoError(t, err)
	assert.Nil(t, m2, "metadata without relation must be pruned")

	m1, err := h.md.GetByMediaID(ctx, "m1")
	require.NoError(t, err)
	assert.NotNil(t, m1)

	_, err = h.reconciler.Reconcile(ctx, port.ReconcileInput{Path: "/a"})
	require.NoError(t, err)
	assert.Empty(t, h.mediaOf(t, "/a"))
	m1, err = h.md.GetByMediaID(ctx, "m1")
	require.NoError(t, err)
	assert.Nil(t, m1)
}

func TestScenario_PreloadForUnreferencedMedia(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	require.NoError(t, h.md.Upsert(ctx, &model.Metadata{MediaID: "m9", Value: json.RawMessage(`{}`), Created: h.now, Updated: h.now}))
	require.NoError(t, h.refresher.ProcessPreload(ctx, model.PreloadItem{MediaID: "m9", RequestedAt: h.now.Unix() + 10}))

	assert.Empty(t, h.fetcher.Calls)
	row, err := h.md.GetByMediaID(ctx, "m9")
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestScenario_WebhookMediaDeleted(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	for _, p := range []string{"/a", "/b"} {
		_, err := h.reconciler.Reconcile(ctx, port.ReconcileInput{Path: p, MediaIDs: []string{"m1"}})
		require.NoError(t, err)
	}
	require.NoError(t, h.refresher.Refresh(ctx, "m1"))
	fetches := len(h.fetcher.Calls)
	h.inv.Calls = nil

	require.NoError(t, h.webhooks.HandleEvent(ctx, model.WebhookEvent{Event: model.EventMediaDeleted, MediaID: "m1"}))

	row, err := h.md.GetByMediaID(ctx, "m1")
	require.NoError(t, err)
	assert.Nil(t, row)
	require.Len(t, h.inv.Calls, 1)
	assert.Equal(t, []string{"/a", "/b"}, h.inv.Calls[0])
	assert.Len(t, h.fetcher.Calls, fetches, "no fetch on deletion")
}

func TestScenario_FailingDiscoveryKeepsRelations(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	_, err := h.reconciler.Reconcile(ctx, port.ReconcileInput{Path: "/a", MediaIDs: []string{"m1"}})
	require.NoError(t, err)
	require.NoError(t, h.md.Upsert(ctx, &model.Metadata{MediaID: "m1", Value: json.RawMessage(`{}`), Created: h.now, Updated: h.now}))

	down := discovery.Func(func(context.Context, port.DiscoveryInput) ([]string, error) {
		return nil, errors.New("host down")
	})
	registrar := metadata.NewPathRegistrar(discovery.NewRegistry(down), h.reconciler)

	_, err = registrar.RegisterPath(ctx, port.DiscoveryInput{Path: "/a"})
	require.Error(t, err)
	assert.Equal(t, []string{"m1"}, h.mediaOf(t, "/a"))
	row, err := h.md.GetByMediaID(ctx, "m1")
	require.NoError(t, err)
	assert.NotNil(t, row)
}

func TestScenario_InvalidMarkupIDIsNotRelated(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	markup, err := discovery.NewMarkupDiscoverer("")
	require.NoError(t, err)
	registrar := metadata.NewPathRegistrar(discovery.NewRegistry(markup), h.reconciler)

	out, err := registrar.RegisterPath(ctx, port.DiscoveryInput{
		Path:   "/a",
		Markup: `<div data-media-id="bad id"></div><div data-media-id="m1"></div>`,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"m1"}, h.mediaOf(t, "/a"))
	assert.Equal(t, []string{"m1"}, out.Queued)
	require.Len(t, h.tasks.PreloadItems, 1)
	assert.Equal(t, "m1", h.tasks.PreloadItems[0].MediaID)
}
