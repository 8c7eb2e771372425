package mariadb

import (
	"context"
	"database/sql"
	"time"

	"github.com/fhuszti/medias-metadata-go/internal/logger"
	"github.com/fhuszti/medias-metadata-go/internal/model"
	"github.com/fhuszti/medias-metadata-go/internal/port"
)

type RelationRepository struct {
	db *sql.DB
}

// compile-time check: *RelationRepository must satisfy port.RelationRepository
var _ port.RelationRepository = (*RelationRepository)(nil)

func NewRelationRepository(db *sql.DB) *RelationRepository {
	return &RelationRepository{db: db}
}

const relationColumns = `media_id, path, entity_type, entity_id, created`

func (r *RelationRepository) ListByPath(ctx context.Context, path string) ([]model.MediaRelation, error) {
	const query = `
      SELECT ` + relationColumns + `
      FROM media_relations
      WHERE path = ?
      ORDER BY media_id
    `
	return r.list(ctx, query, path)
}

func (r *RelationRepository) ListByMediaID(ctx context.Context, mediaID string) ([]model.MediaRelation, error) {
	const query = `
      SELECT ` + relationColumns + `
      FROM media_relations
      WHERE media_id = ?
      ORDER BY path
    `
	return r.list(ctx, query, mediaID)
}

func (r *RelationRepository) ListByEntity(ctx context.Context, entityType string, entityID int64) ([]model.MediaRelation, error) {
	const query = `
      SELECT ` + relationColumns + `
      FROM media_relations
      WHERE entity_type = ? AND entity_id = ?
      ORDER BY path, media_id
    `
	return r.list(ctx, query, entityType, entityID)
}

// Create ignores a (media_id, path) pair that is already stored.
func (r *RelationRepository) Create(ctx context.Context, rel *model.MediaRelation) error {
	logger.Debugf(ctx, "creating relation %q -> %q...", rel.MediaID, rel.Path)

	const query = `
      INSERT IGNORE INTO media_relations
        (media_id, path, entity_type, entity_id, created)
      VALUES (?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		rel.MediaID, rel.Path,
		rel.EntityType, rel.EntityID,
		rel.Created.Unix(),
	)
	return err
}

func (r *RelationRepository) Delete(ctx context.Context, mediaID, path string) error {
	logger.Debugf(ctx, "deleting relation %q -> %q...", mediaID, path)

	const query = `DELETE FROM media_relations WHERE media_id = ? AND path = ?`
	_, err := r.db.ExecContext(ctx, query, mediaID, path)
	return err
}

// ListStaleMediaIDs returns every referenced media ID without metadata or whose metadata
// was last updated before updatedBefore.
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
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *RelationRepository) list(ctx context.Context, query string, args ...any) ([]model.MediaRelation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.MediaRelation
	for rows.Next() {
		var (
			rel        model.MediaRelation
			entityType sql.NullString
			entityID   sql.NullInt64
			created    int64
		)
		if err := rows.Scan(&rel.MediaID, &rel.Path, &entityType, &entityID, &created); err != nil {
			return nil, err
		}
		if entityType.Valid {
			rel.EntityType = &entityType.String
		}
		if entityID.Valid {
			rel.EntityID = &entityID.Int64
		}
		rel.Created = time.Unix(created, 0).UTC()
		out = append(out, rel)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
