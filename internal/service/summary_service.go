package service

import (
	"context"
	"errors"
	"log/slog"

	"notes-manager-server/internal/domain"
	"notes-manager-server/internal/metrics"
	"notes-manager-server/internal/repository"
	"notes-manager-server/pkg/gemini"
)

const summaryPrompt = "Read the following text and provide a concise, yet complete summary " +
	"that captures all key details. Avoid adding opinions or extra commentary. " +
	"Respond only with the summary:\n\n"

// Placeholders returned instead of a summary when generation fails.
const (
	SummaryTimedOut      = "API request timed out"
	SummaryFailed        = "Generation failed"
	SummaryResponseError = "API response error"
)

// Summarizer turns text into a summary. It never fails: problems with the
// backend are reported as a placeholder string.
type Summarizer interface {
	Summarize(ctx context.Context, content string) string
}

// TextGenerator is the remote model behind GenerativeSummarizer.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type GenerativeSummarizer struct {
	generator TextGenerator
	logger    *slog.Logger
}

func NewGenerativeSummarizer(generator TextGenerator, logger *slog.Logger) *GenerativeSummarizer {
	return &GenerativeSummarizer{
		generator: generator,
		logger:    logger,
	}
}

func (s *GenerativeSummarizer) Summarize(ctx context.Context, content string) string {
	s.logger.Debug("sending text to generative API", "content_length", len(content))

	summary, err := s.generator.GenerateContent(ctx, summaryPrompt+content)
	if err == nil {
		metrics.SummariesTotal.WithLabelValues("ok").Inc()
		return summary
	}

	var apiErr *gemini.APIError
	switch {
	case errors.Is(err, gemini.ErrTimeout):
		s.logger.Error("generative API request timed out", "error", err)
		metrics.SummariesTotal.WithLabelValues("timeout").Inc()
		return SummaryTimedOut
	case errors.As(err, &apiErr):
		s.logger.Error("generative API response error", "status", apiErr.StatusCode, "error", err)
		metrics.SummariesTotal.WithLabelValues("response_error").Inc()
		return SummaryResponseError
	default:
		s.logger.Error("generative API request failed", "error", err)
		metrics.SummariesTotal.WithLabelValues("failed").Inc()
		return SummaryFailed
	}
}

type SummaryService struct {
	repo       repository.NoteRepository
	summarizer Summarizer
	logger     *slog.Logger
}

func NewSummaryService(repo repository.NoteRepository, summarizer Summarizer, logger *slog.Logger) *SummaryService {
	return &SummaryService{
		repo:       repo,
		summarizer: summarizer,
		logger:     logger,
	}
}

func (s *SummaryService) SummarizeNote(ctx context.Context, noteID int64) (*domain.NoteSummary, error) {
	note, err := s.repo.FindByID(ctx, noteID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoteNotFound
	}
	if err != nil {
		s.logger.Error("database error", "op", "summarize note", "note_id", noteID, "error", err)
		return nil, &StorageError{Op: "summarize note", Err: err}
	}

	return &domain.NoteSummary{
		NoteID:  note.ID,
		Summary: s.summarizer.Summarize(ctx, note.Content),
	}, nil
}
