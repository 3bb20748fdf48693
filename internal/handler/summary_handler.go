package handler

import (
	"net/http"

	"notes-manager-server/internal/service"
	"notes-manager-server/pkg/response"
)

type SummaryHandler struct {
	service *service.SummaryService
}

func NewSummaryHandler(service *service.SummaryService) *SummaryHandler {
	return &SummaryHandler{
		service: service,
	}
}

// Summarize always answers 200 for an existing note; a failed generation is
// reported through the placeholder text in the summary field.
func (h *SummaryHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	noteID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid note ID")
		return
	}

	summary, err := h.service.SummarizeNote(r.Context(), noteID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, summary)
}
