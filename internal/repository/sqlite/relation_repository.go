package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fhuszti/medias-metadata-go/internal/model"
	"github.com/fhuszti/medias-metadata-go/internal/port"
)

type RelationRepository struct {
	db *sql.DB
}

var _ port.RelationRepository = (*RelationRepository)(nil)

func NewRelationRepository(db *sql.DB) *RelationRepository {
	return &RelationRepository{db: db}
}

const relationColumns = `media_id, path, entity_type, entity_id, created`

func (r *RelationRepository) ListByPath(ctx context.Context, path string) ([]model.MediaRelation, error) {
	return r.list(ctx, `SELECT `+relationColumns+` FROM media_relations WHERE path = ? ORDER BY media_id`, path)
}

func (r *RelationRepository) ListByMediaID(ctx context.Context, mediaID string) ([]model.MediaRelation, error) {
	return r.list(ctx, `SELECT `+relationColumns+` FROM media_relations WHERE media_id = ? ORDER BY path`, mediaID)
}

func (r *RelationRepository) ListByEntity(ctx context.Context, entityType string, entityID int64) ([]model.MediaRelation, error) {
	return r.list(ctx,
		`SELECT `+relationColumns+` FROM media_relations WHERE entity_type = ? AND entity_id = ? ORDER BY path, media_id`,
		entityType, entityID,
	)
}

func (r *RelationRepository) Create(ctx context.Context, rel *model.MediaRelation) error {
	const query = `
		INSERT OR IGNORE INTO media_relations (media_id, path, entity_type, entity_id, created)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query, rel.MediaID, rel.Path, rel.EntityType, rel.EntityID, rel.Created.Unix())
	return err
}

func (r *RelationRepository) Delete(ctx context.Context, mediaID, path string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM media_relations WHERE media_id = ? AND path = ?`, mediaID, path)
	return err
}

func (r *RelationRepository) ListStaleMediaIDs(ctx context.Context, updatedBefore time.Time) ([]string, error) {
	const query = `
		SELECT DISTINCT r.media_id
		FROM media_relations r
		LEFT JOIN media_metadata m ON m.media_id = r.media_id
		WHERE m.media_id IS NULL OR m.updated < ?
		ORDER BY r.media_id
	`
	rows, err := r.db.QueryContext(ctx, query, updatedBefore.Unix())
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *RelationRepository) list(ctx context.Context, query string, args ...any) ([]model.MediaRelation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.MediaRelation
	for rows.Next() {
		rel, err := scanRelation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rel)
	}
	return out, rows.Err()
}
