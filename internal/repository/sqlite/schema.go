package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema mirrors the MariaDB migrations.
const Schema = `
CREATE TABLE IF NOT EXISTS media_relations (
    media_id    TEXT    NOT NULL,
    path        TEXT    NOT NULL,
    entity_type TEXT,
    entity_id   INTEGER,
    created     INTEGER NOT NULL,
    PRIMARY KEY (media_id, path)
);

CREATE INDEX IF NOT EXISTS idx_media_relations_path ON media_relations(path);
CREATE INDEX IF NOT EXISTS idx_media_relations_entity ON media_relations(entity_type, entity_id);

CREATE TABLE IF NOT EXISTS media_metadata (
    media_id TEXT    NOT NULL PRIMARY KEY,
    value    TEXT    NOT NULL,
    created  INTEGER NOT NULL,
    updated  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_media_metadata_updated ON media_metadata(updated);
`

func ApplySchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
