package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/fhuszti/medias-metadata-go/internal/model"
	"github.com/fhuszti/medias-metadata-go/internal/port"
)

type MetadataRepository struct {
	db *sql.DB
}

var _ port.MetadataRepository = (*MetadataRepository)(nil)

func NewMetadataRepository(db *sql.DB) *MetadataRepository {
	return &MetadataRepository{db: db}
}

func (r *MetadataRepository) GetByMediaID(ctx context.Context, mediaID string) (*model.Metadata, error) {
	row := r.db.QueryRowContext(ctx, `SELECT media_id, value, created, updated FROM media_metadata WHERE media_id = ?`, mediaID)
	m, err := scanMetadata(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return m, err
}

func (r *MetadataRepository) GetByMediaIDs(ctx context.Context, mediaIDs []string) (map[string]*model.Metadata, error) {
	out := make(map[string]*model.Metadata, len(mediaIDs))
	if len(mediaIDs) == 0 {
		return out, nil
	}

	args := make([]any, len(mediaIDs))
	for i, id := range mediaIDs {
		args[i] = id
	}
	query := `SELECT media_id, value, created, updated FROM media_metadata WHERE media_id IN (` +
		strings.TrimSuffix(strings.Repeat("?, ", len(mediaIDs)), ", ") + `)`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		m, err := scanMetadata(rows)
		if err != nil {
			return nil, err
		}
		out[m.MediaID] = m
	}
	return out, rows.Err()
}

func (r *MetadataRepository) Upsert(ctx context.Context, m *model.Metadata) error {
	const query = `
		INSERT INTO media_metadata (media_id, value, created, updated)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(media_id) DO UPDATE SET
			value   = excluded.value,
			updated = MAX(updated, excluded.updated)
	`
	_, err := r.db.ExecContext(ctx, query, m.MediaID, string(m.Value), m.Created.Unix(), m.Updated.Unix())
	return err
}

func (r *MetadataRepository) Delete(ctx context.Context, mediaID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM media_metadata WHERE media_id = ?`, mediaID)
	return err
}

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
	return n > 0, err
}

func (r *MetadataRepository) DeleteOrphaned(ctx context.Context) (int64, error) {
	const query = `
		DELETE FROM media_metadata
		WHERE NOT EXISTS (SELECT 1 FROM media_relations r WHERE r.media_id = media_metadata.media_id)
	`
	res, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
