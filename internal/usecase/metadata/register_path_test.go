package metadata

import (
	"context"
	"errors"
	"testing"

	"github.com/fhuszti/medias-metadata-go/internal/mock"
	"github.com/fhuszti/medias-metadata-go/internal/port"
)

func TestRegisterPath_PassesDiscoveredIDs(t *testing.T) {
	disc := &mock.MockDiscoverer{Out: []string{"m1", "m2"}}
	rec := &mock.MockReconciler{Out: port.ReconcileOutput{Queued: []string{"m1", "m2"}}}
	svc := NewPathRegistrar(disc, rec)

	typ := "node"
	out, err := svc.RegisterPath(context.Background(), port.DiscoveryInput{Path: "/a", EntityType: &typ, Markup: "<p></p>"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if disc.In.Markup != "<p></p>" {
		t.Errorf("expected markup passed to discoverer, got %q", disc.In.Markup)
	}
	if rec.In.Path != "/a" || rec.In.EntityType != &typ {
		t.Errorf("unexpected reconcile input %+v", rec.In)
	}
	assertStrings(t, "reconciled ids", rec.In.MediaIDs, []string{"m1", "m2"})
	assertStrings(t, "queued", out.Queued, []string{"m1", "m2"})
}

func TestRegisterPath_DiscoveryError(t *testing.T) {
	disc := &mock.MockDiscoverer{Err: errors.New("boom")}
	rec := &mock.MockReconciler{}
	svc := NewPathRegistrar(disc, rec)

	if _, err := svc.RegisterPath(context.Background(), port.DiscoveryInput{Path: "/a"}); !errors.Is(err, disc.Err) {
		t.Fatalf("expected boom, got %v", err)
	}
	if rec.Called {
		t.Error("expected reconciler not to be called")
	}
}
