package mock

import (
	"context"

	"github.com/fhuszti/medias-metadata-go/internal/model"
)

// MockMetadataRepo is an in-memory metadata store recording calls for tests.
// Relations, when set, backs the orphan checks.
type MockMetadataRepo struct {
	Rows      map[string]*model.Metadata
	Relations *MockRelationRepo

	GetErr    error
	UpsertErr error
	DeleteErr error
	PruneErr  error

	PruneOut int64

	Upserted     []*model.Metadata
	DeletedIDs   []string
	PrunedIDs    []string
	PruneChecked []string
	PruneCalled  bool
}

func (m *MockMetadataRepo) GetByMediaID(ctx context.Context, mediaID string) (*model.Metadata, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.Rows[mediaID], nil
}

func (m *MockMetadataRepo) GetByMediaIDs(ctx context.Context, mediaIDs []string) (map[string]*model.Metadata, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	out := make(map[string]*model.Metadata, len(mediaIDs))
	for _, id := range mediaIDs {
		if row, ok := m.Rows[id]; ok {
			out[id] = row
		}
	}
	return out, nil
}

func (m *MockMetadataRepo) Upsert(ctx context.Context, md *model.Metadata) error {
	if m.UpsertErr != nil {
		return m.UpsertErr
	}
	m.Upserted = append(m.Upserted, md)
	if m.Rows == nil {
		m.Rows = map[string]*model.Metadata{}
	}
	if prev, ok := m.Rows[md.MediaID]; ok {
		row := *prev
		row.Value = md.Value
		if md.Updated.After(row.Updated) {
			row.Updated = md.Updated
		}
		m.Rows[md.MediaID] = &row
		return nil
	}
	row := *md
	m.Rows[md.MediaID] = &row
	return nil
}

func (m *MockMetadataRepo) Delete(ctx context.Context, mediaID string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.DeletedIDs = append(m.DeletedIDs, mediaID)
	delete(m.Rows, mediaID)
	return nil
}

func (m *MockMetadataRepo) DeleteIfOrphaned(ctx context.Context, mediaID string) (bool, error) {
	m.PruneChecked = append(m.PruneChecked, mediaID)
	if m.PruneErr != nil {
		return false, m.PruneErr
	}
	if m.Relations != nil && m.Relations.HasMedia(mediaID) {
		return false, nil
	}
	if _, ok := m.Rows[mediaID]; !ok {
		return false, nil
	}
	delete(m.Rows, mediaID)
	m.PrunedIDs = append(m.PrunedIDs, mediaID)
	return true, nil
}

func (m *MockMetadataRepo) DeleteOrphaned(ctx context.Context) (int64, error) {
	m.PruneCalled = true
	if m.PruneErr != nil {
		return 0, m.PruneErr
	}
	return m.PruneOut, nil
}
