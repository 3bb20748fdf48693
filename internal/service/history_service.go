package service

import (
	"context"
	"errors"
	"log/slog"

	"notes-manager-server/internal/domain"
	"notes-manager-server/internal/repository"
)

// HistoryService is read-only access to the versions written by note updates.
type HistoryService struct {
	versionRepo repository.NoteVersionRepository
	logger      *slog.Logger
}

func NewHistoryService(versionRepo repository.NoteVersionRepository, logger *slog.Logger) *HistoryService {
	return &HistoryService{
		versionRepo: versionRepo,
		logger:      logger,
	}
}

// ListVersions returns the note's versions newest first, at most limit of
// them when limit is positive. The result is empty both for a note without
// history and for an unknown note; callers that need to tell the two apart
// look the note up themselves.
func (s *HistoryService) ListVersions(ctx context.Context, noteID int64, limit int) ([]*domain.NoteVersionResponse, error) {
	versions, err := s.versionRepo.GetVersions(ctx, noteID, limit)
	if err != nil {
		s.logger.Error("database error", "op", "list versions", "note_id", noteID, "error", err)
		return nil, &StorageError{Op: "list versions", Err: err}
	}

	responses := make([]*domain.NoteVersionResponse, 0, len(versions))
	for _, v := range versions {
		responses = append(responses, domain.NewNoteVersionResponse(v))
	}

	return responses, nil
}

func (s *HistoryService) CountVersions(ctx context.Context, noteID int64) (int, error) {
	count, err := s.versionRepo.CountVersions(ctx, noteID)
	if err != nil {
		s.logger.Error("database error", "op", "count versions", "note_id", noteID, "error", err)
		return 0, &StorageError{Op: "count versions", Err: err}
	}
	return count, nil
}

func (s *HistoryService) GetVersion(ctx context.Context, noteID, versionID int64) (*domain.NoteVersionResponse, error) {
	v, err := s.versionRepo.GetVersion(ctx, noteID, versionID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrVersionNotFound
	}
	if err != nil {
		s.logger.Error("database error", "op", "get version", "note_id", noteID, "error", err)
		return nil, &StorageError{Op: "get version", Err: err}
	}

	return domain.NewNoteVersionResponse(v), nil
}
