package renderer

import (
	"context"
	"fmt"
	"hash/crc32"

	"github.com/fhuszti/medias-metadata-go/internal/port"
	"github.com/fhuszti/medias-metadata-go/internal/usecase/metadata"
)

type httpRenderer struct{}

// compile-time check: *httpRenderer must satisfy port.HTTPRenderer
var _ port.HTTPRenderer = (*httpRenderer)(nil)

// NewHTTPRenderer creates a new HTTPRenderer implementation.
func NewHTTPRenderer() port.HTTPRenderer {
	return &httpRenderer{}
}

// RenderMetadata returns the cached metadata document exactly as the media API sent it,
// with a quoted ETag derived from its bytes.
func (r *httpRenderer) RenderMetadata(ctx context.Context, getter port.MetadataGetter, mediaID string) ([]byte, string, error) {
	m, err := getter.GetMetadata(ctx, mediaID)
	if err != nil {
		return nil, "", err
	}
	if m == nil || len(m.Value) == 0 {
		return nil, "", metadata.ErrMetadataNotFound
	}

	raw := []byte(m.Value)
	etag := fmt.Sprintf("\"%08x\"", crc32.ChecksumIEEE(raw))
	return raw, etag, nil
}
