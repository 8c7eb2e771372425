package mock

import (
	"context"
	"encoding/json"
)

// MockFetcher returns Values[mediaID] or Err.
type MockFetcher struct {
	Values map[string]json.RawMessage
	Err    error

	Calls []string
}

func (m *MockFetcher) Fetch(ctx context.Context, mediaID string) (json.RawMessage, error) {
	m.Calls = append(m.Calls, mediaID)
	if m.Err != nil {
		return nil, m.Err
	}
	if v, ok := m.Values[mediaID]; ok {
		return v, nil
	}
	return json.RawMessage(`{}`), nil
}
