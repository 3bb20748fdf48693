package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"notes-manager-server/internal/database"
	"notes-manager-server/internal/domain"
)

type NoteVersionRepository interface {
	// GetVersions returns the versions of a note newest first. A limit of
	// zero or less returns all of them.
	GetVersions(ctx context.Context, noteID int64, limit int) ([]*domain.NoteVersion, error)
	GetVersion(ctx context.Context, noteID, versionID int64) (*domain.NoteVersion, error)
	CountVersions(ctx context.Context, noteID int64) (int, error)
}

type noteVersionRepo struct {
	db *database.DB
}

func NewNoteVersionRepository(db *database.DB) NoteVersionRepository {
	return &noteVersionRepo{db: db}
}

func (r *noteVersionRepo) GetVersions(ctx context.Context, noteID int64, limit int) ([]*domain.NoteVersion, error) {
	query := `SELECT id, note_id, content, created_at FROM note_versions
		WHERE note_id = ? ORDER BY created_at DESC, id DESC`
	args := []any{noteID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list note versions: %w", err)
	}
	defer rows.Close()

	versions := []*domain.NoteVersion{}
	for rows.Next() {
		var (
			v         domain.NoteVersion
			createdAt int64
		)
		if err := rows.Scan(&v.ID, &v.NoteID, &v.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan note version: %w", err)
		}
		v.CreatedAt = fromUnix(createdAt)
		versions = append(versions, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list note versions: %w", err)
	}

	return versions, nil
}

func (r *noteVersionRepo) GetVersion(ctx context.Context, noteID, versionID int64) (*domain.NoteVersion, error) {
	query := r.db.Rebind(`SELECT id, note_id, content, created_at FROM note_versions
		WHERE note_id = ? AND id = ?`)

	var (
		v         domain.NoteVersion
		createdAt int64
	)
	err := r.db.QueryRowContext(ctx, query, noteID, versionID).Scan(&v.ID, &v.NoteID, &v.Content, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find note version: %w", err)
	}

	v.CreatedAt = fromUnix(createdAt)
	return &v, nil
}

func (r *noteVersionRepo) CountVersions(ctx context.Context, noteID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		r.db.Rebind(`SELECT COUNT(*) FROM note_versions WHERE note_id = ?`), noteID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count note versions: %w", err)
	}
	return count, nil
}
