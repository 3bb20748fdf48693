package handler

import (
	"net/http"

	"notes-manager-server/internal/service"
	"notes-manager-server/pkg/response"
)

type AnalyticsHandler struct {
	service *service.AnalyticsService
}

func NewAnalyticsHandler(service *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
	}
}

func (h *AnalyticsHandler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Report(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, report)
}
