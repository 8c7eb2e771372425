package mock

import (
	"context"

	"github.com/fhuszti/medias-metadata-go/internal/port"
)

// MockHTTPRenderer implements port.HTTPRenderer for tests.
type MockHTTPRenderer struct {
	Data []byte
	Etag string
	Err  error

	Called  bool
	Getter  port.MetadataGetter
	MediaID string
}

func (m *MockHTTPRenderer) RenderMetadata(ctx context.Context, getter port.MetadataGetter, mediaID string) ([]byte, string, error) {
	m.Called = true
	m.Getter = getter
	m.MediaID = mediaID
	return m.Data, m.Etag, m.Err
}
