package renderer

import (
	"context"
	"errors"
	"fmt"
	"hash/crc32"
	"testing"

	"github.com/fhuszti/medias-metadata-go/internal/mock"
	"github.com/fhuszti/medias-metadata-go/internal/model"
	"github.com/fhuszti/medias-metadata-go/internal/usecase/metadata"
)

func TestRenderMetadata_Cases(t *testing.T) {
	ctx := context.Background()
	r := NewHTTPRenderer()

	t.Run("found", func(t *testing.T) {
		value := []byte(`{"title":"Sunset","duration":12}`)
		getter := &mock.MockMetadataGetter{Out: &model.Metadata{MediaID: "m1", Value: value}}

		out, etag, err := r.RenderMetadata(ctx, getter, "m1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(out) != string(value) {
			t.Errorf("raw mismatch: got %s want %s", out, value)
		}
		expEtag := fmt.Sprintf("\"%08x\"", crc32.ChecksumIEEE(value))
		if etag != expEtag {
			t.Errorf("etag mismatch: got %s want %s", etag, expEtag)
		}
		if !getter.Called {
			t.Error("getter should be called")
		}
	})

	t.Run("empty value", func(t *testing.T) {
		getter := &mock.MockMetadataGetter{Out: &model.Metadata{MediaID: "m1"}}
		if _, _, err := r.RenderMetadata(ctx, getter, "m1"); !errors.Is(err, metadata.ErrMetadataNotFound) {
			t.Fatalf("expected ErrMetadataNotFound, got %v", err)
		}
	})

	t.Run("getter error", func(t *testing.T) {
		getter := &mock.MockMetadataGetter{Err: errors.New("fail")}
		if _, _, err := r.RenderMetadata(ctx, getter, "m1"); err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}
