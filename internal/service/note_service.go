package service

import (
	"context"
	"errors"
	"log/slog"

	"notes-manager-server/internal/domain"
	"notes-manager-server/internal/repository"

	"github.com/go-playground/validator/v10"
)

type NoteService struct {
	repo     repository.NoteRepository
	validate *validator.Validate
	logger   *slog.Logger
}

func NewNoteService(repo repository.NoteRepository, logger *slog.Logger) *NoteService {
	return &NoteService{
		repo:     repo,
		validate: newValidator(),
		logger:   logger,
	}
}

func (s *NoteService) Create(ctx context.Context, req *domain.CreateNoteRequest) (*domain.NoteResponse, error) {
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}

	note := &domain.Note{
		Title:   req.Title,
		Content: req.Content,
	}

	if err := s.repo.Create(ctx, note); err != nil {
		return nil, s.storageError("create note", err)
	}

	s.logger.Info("note created", "note_id", note.ID)
	return domain.NewNoteResponse(note), nil
}

func (s *NoteService) List(ctx context.Context) ([]*domain.NoteResponse, error) {
	notes, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.storageError("list notes", err)
	}

	responses := make([]*domain.NoteResponse, 0, len(notes))
	for _, n := range notes {
		responses = append(responses, domain.NewNoteResponse(n))
	}

	return responses, nil
}

func (s *NoteService) GetByID(ctx context.Context, noteID int64) (*domain.NoteResponse, error) {
	note, err := s.repo.FindByID(ctx, noteID)
	if err != nil {
		return nil, s.lookupError("get note", err)
	}

	return domain.NewNoteResponse(note), nil
}

// Update applies the supplied fields. Unless the request is empty, the
// content held before the change is kept as a new version; an empty request
// returns the note untouched and writes no history.
func (s *NoteService) Update(ctx context.Context, noteID int64, req *domain.UpdateNoteRequest) (*domain.NoteResponse, error) {
	if req.IsEmpty() {
		return s.GetByID(ctx, noteID)
	}

	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}

	note, err := s.repo.UpdateWithVersion(ctx, noteID, func(n *domain.Note) {
		if req.Title != nil {
			n.Title = *req.Title
		}
		if req.Content != nil {
			n.Content = *req.Content
		}
	})
	if err != nil {
		return nil, s.lookupError("update note", err)
	}

	s.logger.Info("note updated", "note_id", note.ID)
	return domain.NewNoteResponse(note), nil
}

// Delete removes the note and its history. No version is written for the
// deletion itself.
func (s *NoteService) Delete(ctx context.Context, noteID int64) (*domain.NoteResponse, error) {
	note, err := s.repo.Delete(ctx, noteID)
	if err != nil {
		return nil, s.lookupError("delete note", err)
	}

	s.logger.Info("note deleted", "note_id", note.ID)
	return domain.NewNoteResponse(note), nil
}

func (s *NoteService) lookupError(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNoteNotFound
	}
	return s.storageError(op, err)
}

func (s *NoteService) storageError(op string, err error) error {
	s.logger.Error("database error", "op", op, "error", err)
	return &StorageError{Op: op, Err: err}
}
