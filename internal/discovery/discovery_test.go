package discovery

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/fhuszti/medias-metadata-go/internal/port"
)

func TestRegistry_UnionInRegistrationOrder(t *testing.T) {
	first := Func(func(context.Context, port.DiscoveryInput) ([]string, error) {
		return []string{"m2", "m1", " "}, nil
	})
	second := Func(func(context.Context, port.DiscoveryInput) ([]string, error) {
		return []string{"m1", "m3"}, nil
	})
	reg := NewRegistry(first)
	reg.Register(second)

	got, err := reg.RegisterMediaIDs(context.Background(), port.DiscoveryInput{Path: "/a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"m2", "m1", "m3"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestRegistry_FailingDiscovererAborts(t *testing.T) {
	boom := errors.New("host down")
	ok := Func(func(context.Context, port.DiscoveryInput) ([]string, error) {
		return []string{"m1"}, nil
	})
	failing := Func(func(context.Context, port.DiscoveryInput) ([]string, error) {
		return nil, boom
	})

	got, err := NewRegistry(ok, failing).RegisterMediaIDs(context.Background(), port.DiscoveryInput{Path: "/a"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected host down error, got %v", err)
	}
	if got != nil {
		t.Errorf("expected no ids on failure, got %v", got)
	}
}

func TestRegistry_DropsInvalidMediaIDs(t *testing.T) {
	markup, err := NewMarkupDiscoverer("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tooLong := strings.Repeat("a", 200)
	in := port.DiscoveryInput{
		Path:   "/a",
		Markup: `<div data-media-id="bad id"></div><div data-media-id="0_ok"></div><div data-media-id="` + tooLong + `"></div>`,
	}

	got, err := NewRegistry(markup).RegisterMediaIDs(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"0_ok"}) {
		t.Fatalf("expected only [0_ok], got %v", got)
	}
}

func TestRegistry_Empty(t *testing.T) {
	got, err := NewRegistry().RegisterMediaIDs(context.Background(), port.DiscoveryInput{Path: "/a"})
	if err != nil || len(got) != 0 {
		t.Fatalf("expected no ids, got %v (%v)", got, err)
	}
}

func TestReported(t *testing.T) {
	got, _ := Reported().RegisterMediaIDs(context.Background(), port.DiscoveryInput{MediaIDs: []string{"m1"}})
	if !reflect.DeepEqual(got, []string{"m1"}) {
		t.Fatalf("expected [m1], got %v", got)
	}
}

func TestMarkupDiscoverer(t *testing.T) {
	d, err := NewMarkupDiscoverer("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	markup := `<p>intro</p><div data-media-id="0_abc"></div><span data-media-id="1_xyz">x</span>`
	got, err := d.RegisterMediaIDs(context.Background(), port.DiscoveryInput{Markup: markup})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"0_abc", "1_xyz"}) {
		t.Fatalf("unexpected ids %v", got)
	}

	none, _ := d.RegisterMediaIDs(context.Background(), port.DiscoveryInput{})
	if len(none) != 0 {
		t.Errorf("expected no ids without markup, got %v", none)
	}
}

func TestNewMarkupDiscoverer_InvalidPattern(t *testing.T) {
	for _, p := range []string{"(", `data-media-id="[^"]+"`, `(a)(b)`} {
		if _, err := NewMarkupDiscoverer(p); err == nil {
			t.Errorf("expected error for pattern %q", p)
		}
	}
}
