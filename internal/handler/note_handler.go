package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"notes-manager-server/internal/domain"
	"notes-manager-server/internal/service"
	"notes-manager-server/pkg/response"
)

const maxBodyBytes = 1 << 20

type NoteHandler struct {
	service *service.NoteService
}

func NewNoteHandler(service *service.NoteService) *NoteHandler {
	return &NoteHandler{
		service: service,
	}
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateNoteRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	note, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, note)
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	notes, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, notes)
}

func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	noteID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid note ID")
		return
	}

	note, err := h.service.GetByID(r.Context(), noteID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, note)
}

// Update applies a partial update. An empty body is treated like an empty
// object and returns the note unchanged.
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	noteID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid note ID")
		return
	}

	var req domain.UpdateNoteRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	note, err := h.service.Update(r.Context(), noteID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, note)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	noteID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid note ID")
		return
	}

	if _, err := h.service.Delete(r.Context(), noteID); err != nil {
		writeError(w, err)
		return
	}

	response.NoContent(w)
}
