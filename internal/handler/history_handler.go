package handler

import (
	"net/http"
	"strconv"

	"notes-manager-server/internal/service"
	"notes-manager-server/pkg/response"
)

type HistoryHandler struct {
	notes   *service.NoteService
	history *service.HistoryService
}

func NewHistoryHandler(notes *service.NoteService, history *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{
		notes:   notes,
		history: history,
	}
}

const totalCountHeader = "X-Total-Count"

// List answers 404 for an unknown note and an empty list for a note that
// was never updated. The optional limit query parameter keeps only the
// newest versions; X-Total-Count always carries the full count.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	noteID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid note ID")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			response.BadRequest(w, "Invalid limit")
			return
		}
	}

	if _, err := h.notes.GetByID(r.Context(), noteID); err != nil {
		writeError(w, err)
		return
	}

	versions, err := h.history.ListVersions(r.Context(), noteID, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	total, err := h.history.CountVersions(r.Context(), noteID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set(totalCountHeader, strconv.Itoa(total))
	response.Success(w, versions)
}

func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	noteID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid note ID")
		return
	}
	versionID, err := pathID(r, "versionId")
	if err != nil {
		response.BadRequest(w, "Invalid version ID")
		return
	}

	version, err := h.history.GetVersion(r.Context(), noteID, versionID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, version)
}
