package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"notes-manager-server/pkg/response"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db     Pinger
	logger *slog.Logger
}

func NewHealthHandler(db Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		logger: logger,
	}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Error("health check failed", "error", err)
		response.ServiceUnavailable(w, "Database unavailable")
		return
	}

	response.Success(w, map[string]string{
		"status":  "healthy",
		"service": "notes-manager-server",
	})
}
