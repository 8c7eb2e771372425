package mock

import (
	"context"
	"time"

	"github.com/fhuszti/medias-metadata-go/internal/model"
)

// MockRelationRepo is an in-memory relation store recording calls for tests.
type MockRelationRepo struct {
	Rows []model.MediaRelation

	ListErr   error
	CreateErr error
	DeleteErr error
	StaleErr  error
	StaleOut  []string

	Created      []model.MediaRelation
	Deleted      []model.MediaRelation
	StaleBefore  time.Time
	ListedPaths  []string
	ListedMedias []string
}

func (m *MockRelationRepo) ListByPath(ctx context.Context, path string) ([]model.MediaRelation, error) {
	m.ListedPaths = append(m.ListedPaths, path)
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.filter(func(r model.MediaRelation) bool { return r.Path == path }), nil
}

func (m *MockRelationRepo) ListByMediaID(ctx context.Context, mediaID string) ([]model.MediaRelation, error) {
	m.ListedMedias = append(m.ListedMedias, mediaID)
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.filter(func(r model.MediaRelation) bool { return r.MediaID == mediaID }), nil
}

func (m *MockRelationRepo) ListByEntity(ctx context.Context, entityType string, entityID int64) ([]model.MediaRelation, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.filter(func(r model.MediaRelation) bool {
		return r.EntityType != nil && *r.EntityType == entityType && r.EntityID != nil && *r.EntityID == entityID
	}), nil
}

func (m *MockRelationRepo) Create(ctx context.Context, rel *model.MediaRelation) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.Created = append(m.Created, *rel)
	for _, r := range m.Rows {
		if r.MediaID == rel.MediaID && r.Path == rel.Path {
			return nil
		}
	}
	m.Rows = append(m.Rows, *rel)
	return nil
}

func (m *MockRelationRepo) Delete(ctx context.Context, mediaID, path string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	kept := m.Rows[:0]
	for _, r := range m.Rows {
		if r.MediaID == mediaID && r.Path == path {
			m.Deleted = append(m.Deleted, r)
			continue
		}
		kept = append(kept, r)
	}
	m.Rows = kept
	return nil
}

func (m *MockRelationRepo) ListStaleMediaIDs(ctx context.Context, updatedBefore time.Time) ([]string, error) {
	m.StaleBefore = updatedBefore
	if m.StaleErr != nil {
		return nil, m.StaleErr
	}
	return m.StaleOut, nil
}

// HasMedia reports whether any relation references the media ID.
func (m *MockRelationRepo) HasMedia(mediaID string) bool {
	for _, r := range m.Rows {
		if r.MediaID == mediaID {
			return true
		}
	}
	return false
}

func (m *MockRelationRepo) filter(keep func(model.MediaRelation) bool) []model.MediaRelation {
	var out []model.MediaRelation
	for _, r := range m.Rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
