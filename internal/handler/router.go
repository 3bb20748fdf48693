package handler

import (
	"log/slog"

	"notes-manager-server/internal/config"
	"notes-manager-server/internal/metrics"
	"notes-manager-server/internal/middleware"

	"github.com/gorilla/mux"
)

type Handlers struct {
	Notes     *NoteHandler
	History   *HistoryHandler
	Analytics *AnalyticsHandler
	Summary   *SummaryHandler
	Health    *HealthHandler
}

type RouterOptions struct {
	Logger *slog.Logger
	CORS   config.CORSConfig
	// RateLimiter may be nil to disable rate limiting.
	RateLimiter *middleware.RateLimiter
}

func NewRouter(h Handlers, opts RouterOptions) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware(opts.Logger))
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.CORSMiddleware(
		opts.CORS.AllowedOrigins,
		opts.CORS.AllowedMethods,
		opts.CORS.AllowedHeaders,
	))
	if opts.RateLimiter != nil {
		r.Use(middleware.RateLimitMiddleware(opts.RateLimiter))
	}

	r.HandleFunc("/notes", h.Notes.Create).Methods("POST", "OPTIONS")
	r.HandleFunc("/notes", h.Notes.List).Methods("GET", "OPTIONS")
	r.HandleFunc("/notes/{id}", h.Notes.Get).Methods("GET", "OPTIONS")
	r.HandleFunc("/notes/{id}", h.Notes.Update).Methods("PUT", "OPTIONS")
	r.HandleFunc("/notes/{id}", h.Notes.Delete).Methods("DELETE", "OPTIONS")

	r.HandleFunc("/history/{id}", h.History.List).Methods("GET", "OPTIONS")
	r.HandleFunc("/history/{id}/{versionId}", h.History.Get).Methods("GET", "OPTIONS")

	r.HandleFunc("/analytics", h.Analytics.Report).Methods("GET", "OPTIONS")

	r.HandleFunc("/summarizer/{id}", h.Summary.Summarize).Methods("POST", "OPTIONS")

	r.HandleFunc("/health", h.Health.Check).Methods("GET")
	r.Handle("/metrics", metrics.Handler()).Methods("GET")

	return r
}
