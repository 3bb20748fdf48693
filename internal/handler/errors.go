package handler

import (
	"errors"
	"net/http"
	"strconv"

	"notes-manager-server/internal/service"
	"notes-manager-server/pkg/response"

	"github.com/gorilla/mux"
)

var errInvalidID = errors.New("invalid id")

// writeError maps service errors to status codes. Storage failures were
// already logged by the service; their cause is never sent to the client.
func writeError(w http.ResponseWriter, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		response.BadRequest(w, validationErr.Message)
	case errors.Is(err, service.ErrNoteNotFound):
		response.NotFound(w, "Note not found")
	case errors.Is(err, service.ErrVersionNotFound):
		response.NotFound(w, "Version not found")
	default:
		response.InternalError(w, "Internal server error")
	}
}

// pathID parses a positive integer path variable.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}
