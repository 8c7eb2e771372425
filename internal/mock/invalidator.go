package mock

import "context"

// MockInvalidator records every invalidated batch of paths.
type MockInvalidator struct {
	Err   error
	Calls [][]string
}

func (m *MockInvalidator) Invalidate(ctx context.Context, paths []string) error {
	m.Calls = append(m.Calls, append([]string(nil), paths...))
	return m.Err
}
