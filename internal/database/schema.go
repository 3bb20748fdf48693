package database

import (
	"context"
	"fmt"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS notes (
	id         BIGSERIAL PRIMARY KEY,
	title      VARCHAR(50) NOT NULL,
	content    TEXT NOT NULL,
	created_at BIGINT NOT NULL,
	updated_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notes_title ON notes (title);

CREATE TABLE IF NOT EXISTS note_versions (
	id         BIGSERIAL PRIMARY KEY,
	note_id    BIGINT NOT NULL REFERENCES notes (id) ON DELETE CASCADE,
	content    TEXT NOT NULL,
	created_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_note_versions_note ON note_versions (note_id, created_at);
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS notes (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	title      VARCHAR(50) NOT NULL,
	content    TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notes_title ON notes (title);

CREATE TABLE IF NOT EXISTS note_versions (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	note_id    INTEGER NOT NULL REFERENCES notes (id) ON DELETE CASCADE,
	content    TEXT NOT NULL,
	created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_note_versions_note ON note_versions (note_id, created_at);
`

// Migrate creates the tables and indexes if they do not exist yet.
func (db *DB) Migrate(ctx context.Context) error {
	schema := sqliteSchema
	if db.Dialect == Postgres {
		schema = postgresSchema
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply %s schema: %w", db.Dialect, err)
	}
	return nil
}
