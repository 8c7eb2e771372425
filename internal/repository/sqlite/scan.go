package sqlite

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/fhuszti/medias-metadata-go/internal/model"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRelation(s rowScanner) (model.MediaRelation, error) {
	var (
		rel        model.MediaRelation
		entityType sql.NullString
		entityID   sql.NullInt64
		created    int64
	)
	if err := s.Scan(&rel.MediaID, &rel.Path, &entityType, &entityID, &created); err != nil {
		return rel, err
	}
	if entityType.Valid {
		rel.EntityType = &entityType.String
	}
	if entityID.Valid {
		rel.EntityID = &entityID.Int64
	}
	rel.Created = time.Unix(created, 0).UTC()
	return rel, nil
}

func scanMetadata(s rowScanner) (*model.Metadata, error) {
	var (
		m                model.Metadata
		value            string
		created, updated int64
	)
	if err := s.Scan(&m.MediaID, &value, &created, &updated); err != nil {
		return nil, err
	}
	m.Value = json.RawMessage(value)
	m.Created = time.Unix(created, 0).UTC()
	m.Updated = time.Unix(updated, 0).UTC()
	return &m, nil
}
