package repository

import (
	"context"
	"fmt"

	"notes-manager-server/internal/database"
	"notes-manager-server/internal/domain"
	"notes-manager-server/pkg/textstats"
)

// AnalyticsRepository exposes the corpus-wide aggregates the analytics
// service is built on.
type AnalyticsRepository interface {
	Watermark(ctx context.Context) (domain.Watermark, error)
	WordCount(ctx context.Context) (int64, error)
	AverageLength(ctx context.Context) (float64, error)
	CharacterCount(ctx context.Context) (int64, error)
	// ContentLengths returns every note's content length in id order.
	ContentLengths(ctx context.Context) ([]domain.NoteLength, error)
	// Tokens returns the lower-cased, whitespace-split content of all notes
	// as one stream in id order.
	Tokens(ctx context.Context) ([]string, error)
}

type analyticsRepository struct {
	db *database.DB
}

func NewAnalyticsRepository(db *database.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) Watermark(ctx context.Context) (domain.Watermark, error) {
	var w domain.Watermark
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(MAX(updated_at), 0) FROM notes`).Scan(&w.NoteCount, &w.LastWrite)
	if err != nil {
		return domain.Watermark{}, fmt.Errorf("failed to read watermark: %w", err)
	}
	return w, nil
}

// WordCount counts space separated tokens per note as
// length(content) - length(content without spaces) + 1.
func (r *analyticsRepository) WordCount(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(LENGTH(content) - LENGTH(REPLACE(content, ' ', '')) + 1), 0) FROM notes`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count words: %w", err)
	}
	return total, nil
}

func (r *analyticsRepository) AverageLength(ctx context.Context) (float64, error) {
	var avg float64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(AVG(CAST(LENGTH(content) AS DOUBLE PRECISION)), 0) FROM notes`).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("failed to average note length: %w", err)
	}
	return avg, nil
}

func (r *analyticsRepository) CharacterCount(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(LENGTH(content)), 0) FROM notes`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count characters: %w", err)
	}
	return total, nil
}

func (r *analyticsRepository) ContentLengths(ctx context.Context) ([]domain.NoteLength, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, LENGTH(content) FROM notes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to read note lengths: %w", err)
	}
	defer rows.Close()

	lengths := []domain.NoteLength{}
	for rows.Next() {
		var nl domain.NoteLength
		if err := rows.Scan(&nl.ID, &nl.Length); err != nil {
			return nil, fmt.Errorf("failed to scan note length: %w", err)
		}
		lengths = append(lengths, nl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read note lengths: %w", err)
	}

	return lengths, nil
}

func (r *analyticsRepository) Tokens(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT content FROM notes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to read note contents: %w", err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("failed to scan note content: %w", err)
		}
		tokens = append(tokens, textstats.Tokens(content)...)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read note contents: %w", err)
	}

	return tokens, nil
}
