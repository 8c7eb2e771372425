package metadata

import (
	"context"

	"github.com/fhuszti/medias-metadata-go/internal/model"
	"github.com/fhuszti/medias-metadata-go/internal/port"
)

type metadataGetterSrv struct {
	metadata port.MetadataRepository
}

var _ port.MetadataGetter = (*metadataGetterSrv)(nil)

func NewMetadataGetter(metadata port.MetadataRepository) port.MetadataGetter {
	return &metadataGetterSrv{metadata}
}

// GetMetadata returns ErrMetadataNotFound when nothing is cached for the media ID.
func (s *metadataGetterSrv) GetMetadata(ctx context.Context, mediaID string) (*model.Metadata, error) {
	m, err := s.metadata.GetByMediaID(ctx, mediaID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrMetadataNotFound
	}
	return m, nil
}
