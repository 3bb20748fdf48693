package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"notes-manager-server/internal/database"
	"notes-manager-server/internal/domain"
)

type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) error
	FindByID(ctx context.Context, id int64) (*domain.Note, error)
	List(ctx context.Context) ([]*domain.Note, error)
	// UpdateWithVersion loads the note, stores its current content as a new
	// version, lets mutate change it and saves it, all in one transaction.
	UpdateWithVersion(ctx context.Context, id int64, mutate func(note *domain.Note)) (*domain.Note, error)
	// Delete removes the note and its versions in one transaction and
	// returns the note as it was before removal.
	Delete(ctx context.Context, id int64) (*domain.Note, error)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type noteRepository struct {
	db  *database.DB
	now func() time.Time
}

func NewNoteRepository(db *database.DB) NoteRepository {
	return &noteRepository{
		db:  db,
		now: time.Now,
	}
}

func (r *noteRepository) Create(ctx context.Context, note *domain.Note) error {
	now := r.now().UTC()

	query := r.db.Rebind(`INSERT INTO notes (title, content, created_at, updated_at)
		VALUES (?, ?, ?, ?) RETURNING id`)

	var id int64
	err := r.db.QueryRowContext(ctx, query, note.Title, note.Content, toUnix(now), toUnix(now)).Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	note.ID = id
	note.CreatedAt = fromUnix(toUnix(now))
	note.UpdatedAt = note.CreatedAt
	return nil
}

func (r *noteRepository) FindByID(ctx context.Context, id int64) (*domain.Note, error) {
	return r.findByID(ctx, r.db, id, false)
}

// selectNoteQuery reads one note. With forUpdate the row stays locked until
// the transaction ends; SQLite needs no clause since it has a single writer.
func selectNoteQuery(dialect database.Dialect, forUpdate bool) string {
	query := `SELECT id, title, content, created_at, updated_at FROM notes WHERE id = ?`
	if forUpdate && dialect == database.Postgres {
		query += ` FOR UPDATE`
	}
	return dialect.Rebind(query)
}

func (r *noteRepository) findByID(ctx context.Context, q queryRower, id int64, forUpdate bool) (*domain.Note, error) {
	query := selectNoteQuery(r.db.Dialect, forUpdate)

	var (
		note               domain.Note
		createdAt, updated int64
	)
	err := q.QueryRowContext(ctx, query, id).Scan(&note.ID, &note.Title, &note.Content, &createdAt, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find note: %w", err)
	}

	note.CreatedAt = fromUnix(createdAt)
	note.UpdatedAt = fromUnix(updated)
	return &note, nil
}

func (r *noteRepository) List(ctx context.Context) ([]*domain.Note, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, content, created_at, updated_at FROM notes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := []*domain.Note{}
	for rows.Next() {
		var (
			note               domain.Note
			createdAt, updated int64
		)
		if err := rows.Scan(&note.ID, &note.Title, &note.Content, &createdAt, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		note.CreatedAt = fromUnix(createdAt)
		note.UpdatedAt = fromUnix(updated)
		notes = append(notes, &note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	return notes, nil
}

func (r *noteRepository) UpdateWithVersion(ctx context.Context, id int64, mutate func(note *domain.Note)) (*domain.Note, error) {
	var updated *domain.Note

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		note, err := r.findByID(ctx, tx, id, true)
		if err != nil {
			return err
		}

		now, err := r.nextUpdatedAt(ctx, tx)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			r.db.Rebind(`INSERT INTO note_versions (note_id, content, created_at) VALUES (?, ?, ?)`),
			note.ID, note.Content, now)
		if err != nil {
			return fmt.Errorf("failed to save note version: %w", err)
		}

		mutate(note)
		note.UpdatedAt = fromUnix(now)

		_, err = tx.ExecContext(ctx,
			r.db.Rebind(`UPDATE notes SET title = ?, content = ?, updated_at = ? WHERE id = ?`),
			note.Title, note.Content, now, note.ID)
		if err != nil {
			return fmt.Errorf("failed to update note: %w", err)
		}

		updated = note
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// nextUpdatedAt returns the current time, or one past the newest updated_at
// in the table when the clock is behind it, so the analytics watermark
// changes on every update.
func (r *noteRepository) nextUpdatedAt(ctx context.Context, tx *sql.Tx) (int64, error) {
	var latest int64
	err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(updated_at), 0) FROM notes`).Scan(&latest)
	if err != nil {
		return 0, fmt.Errorf("failed to read latest update time: %w", err)
	}

	now := toUnix(r.now())
	if now <= latest {
		now = latest + 1
	}
	return now, nil
}

func (r *noteRepository) Delete(ctx context.Context, id int64) (*domain.Note, error) {
	var deleted *domain.Note

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		note, err := r.findByID(ctx, tx, id, true)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, r.db.Rebind(`DELETE FROM note_versions WHERE note_id = ?`), id); err != nil {
			return fmt.Errorf("failed to delete note versions: %w", err)
		}
		if _, err := tx.ExecContext(ctx, r.db.Rebind(`DELETE FROM notes WHERE id = ?`), id); err != nil {
			return fmt.Errorf("failed to delete note: %w", err)
		}

		deleted = note
		return nil
	})
	if err != nil {
		return nil, err
	}

	return deleted, nil
}
