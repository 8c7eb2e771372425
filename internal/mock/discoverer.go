package mock

import (
	"context"

	"github.com/fhuszti/medias-metadata-go/internal/port"
)

type MockDiscoverer struct {
	Out []string
	Err error

	Called bool
	In     port.DiscoveryInput
}

func (m *MockDiscoverer) RegisterMediaIDs(ctx context.Context, in port.DiscoveryInput) ([]string, error) {
	m.Called = true
	m.In = in
	return m.Out, m.Err
}
