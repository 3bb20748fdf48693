package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"notes-manager-server/internal/config"
	"notes-manager-server/internal/database"
	"notes-manager-server/internal/handler"
	"notes-manager-server/internal/middleware"
	"notes-manager-server/internal/repository"
	"notes-manager-server/internal/service"
	"notes-manager-server/pkg/gemini"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := newLogger(cfg.Logging.Level)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := database.Open(ctx, cfg.Database.URL, database.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: 30 * time.Minute,
	})
	cancel()
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	noteRepo := repository.NewNoteRepository(db)
	versionRepo := repository.NewNoteVersionRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	genai := gemini.NewClient(cfg.GenAI.BaseURL, cfg.GenAI.Model, cfg.GenAI.APIKey, cfg.GenAI.Timeout)
	summarizer := service.NewGenerativeSummarizer(genai, logger)

	analyticsCache := service.NewAnalyticsCache(cfg.Analytics.CacheSize, cfg.Analytics.CacheTTL)

	noteService := service.NewNoteService(noteRepo, logger)
	historyService := service.NewHistoryService(versionRepo, logger)
	analyticsService := service.NewAnalyticsService(analyticsRepo, analyticsCache, cfg.Analytics.TopN, logger)
	summaryService := service.NewSummaryService(noteRepo, summarizer, logger)

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute)
	}

	r := handler.NewRouter(handler.Handlers{
		Notes:     handler.NewNoteHandler(noteService),
		History:   handler.NewHistoryHandler(noteService, historyService),
		Analytics: handler.NewAnalyticsHandler(analyticsService),
		Summary:   handler.NewSummaryHandler(summaryService),
		Health:    handler.NewHealthHandler(db, logger),
	}, handler.RouterOptions{
		Logger:      logger,
		CORS:        cfg.CORS,
		RateLimiter: limiter,
	})

	addr := cfg.Server.Addr()

	// The write timeout leaves room for a summarization round-trip.
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.GenAI.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting notes server", "addr", addr, "env", cfg.Server.Env, "database", string(db.Dialect))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return
	}

	logger.Info("server stopped gracefully")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
