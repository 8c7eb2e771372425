package mariadb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/fhuszti/medias-metadata-go/internal/logger"
	"github.com/fhuszti/medias-metadata-go/internal/model"
	"github.com/fhuszti/medias-metadata-go/internal/port"
)

type MetadataRepository struct {
	db *sql.DB
}

// compile-time check: *MetadataRepository must satisfy port.MetadataRepository
var _ port.MetadataRepository = (*MetadataRepository)(nil)

func NewMetadataRepository(db *sql.DB) *MetadataRepository {
	return &MetadataRepository{db: db}
}

func (r *MetadataRepository) GetByMediaID(ctx context.Context, mediaID string) (*model.Metadata, error) {
	const query = `
      SELECT media_id, value, created, updated
      FROM media_metadata
      WHERE media_id = ?
    `
	var (
		m                model.Metadata
		value            string
		created, updated int64
	)
	err := r.db.QueryRowContext(ctx, query, mediaID).Scan(&m.MediaID, &value, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	m.Value = json.RawMessage(value)
	m.Created = time.Unix(created, 0).UTC()
	m.Updated = time.Unix(updated, 0).UTC()
	return &m, nil
}

func (r *MetadataRepository) GetByMediaIDs(ctx context.Context, mediaIDs []string) (map[string]*model.Metadata, error) {
	out := make(map[string]*model.Metadata, len(mediaIDs))
	if len(mediaIDs) == 0 {
		return out, nil
	}

	query := `
      SELECT media_id, value, created, updated
      FROM media_metadata
      WHERE media_id IN (` + placeholders(len(mediaIDs)) + `)
    `
	args := make([]any, len(mediaIDs))
	for i, id := range mediaIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			m                model.Metadata
			value            string
			created, updated int64
		)
		if err := rows.Scan(&m.MediaID, &value, &created, &updated); err != nil {
			return nil, err
		}
		m.Value = json.RawMessage(value)
		m.Created = time.Unix(created, 0).UTC()
		m.Updated = time.Unix(updated, 0).UTC()
		out[m.MediaID] = &m
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Upsert keeps the original created timestamp and never moves updated backwards.
func (r *MetadataRepository) Upsert(ctx context.Context, m *model.Metadata) error {
	logger.Debugf(ctx, "upserting metadata of media %q...", m.MediaID)

	const query = `
      INSERT INTO media_metadata
        (media_id, value, created, updated)
      VALUES (?, ?, ?, ?)
      ON DUPLICATE KEY UPDATE
        value   = VALUES(value),
        updated = GREATEST(updated, VALUES(updated))
    `
	_, err := r.db.ExecContext(ctx, query,
		m.MediaID, string(m.Value),
		m.Created.Unix(), m.Updated.Unix(),
	)
	return err
}

func (r *MetadataRepository) Delete(ctx context.Context, mediaID string) error {
	logger.Debugf(ctx, "deleting metadata of media %q...", mediaID)

	const query = `DELETE FROM media_metadata WHERE media_id = ?`
	_, err := r.db.ExecContext(ctx, query, mediaID)
	return err
}

// DeleteIfOrphaned runs the relation check and the delete as a single statement.
func (r *MetadataRepository) DeleteIfOrphaned(ctx context.Context, mediaID string) (bool, error) {
	const query = `
      DELETE FROM media_metadata
      WHERE media_id = ?
        AND NOT EXISTS (SELECT 1 FROM media_relations WHERE media_id = ?)
    `
	res, err := r.db.ExecContext(ctx, query, mediaID, mediaID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *MetadataRepository) DeleteOrphaned(ctx context.Context) (int64, error) {
	const query = `
      DELETE FROM media_metadata
      WHERE NOT EXISTS (
        SELECT 1 FROM media_relations r WHERE r.media_id = media_metadata.media_id
      )
    `
	res, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
