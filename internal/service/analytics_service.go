package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"notes-manager-server/internal/domain"
	"notes-manager-server/internal/metrics"
	"notes-manager-server/internal/repository"
	"notes-manager-server/pkg/textstats"
)

const (
	DefaultTopN = 10

	topNotesCount = 3
)

const (
	statWordCount       = "word_count"
	statAverageLength   = "average_length"
	statMostCommonWords = "most_common_words"
	statTopNotes        = "top_notes"
	statCharacterCount  = "character_count"
	statMedianLength    = "median_length"
	statCommonBigrams   = "common_bigrams"
	statCommonTrigrams  = "common_trigrams"
)

// AnalyticsService computes corpus statistics. Every statistic first reads
// the storage watermark; a changed watermark invalidates all cached
// statistics at once, so the values returned together are always
// consistent with each other.
type AnalyticsService struct {
	repo   repository.AnalyticsRepository
	cache  *AnalyticsCache
	topN   int
	logger *slog.Logger
}

func NewAnalyticsService(repo repository.AnalyticsRepository, cache *AnalyticsCache, topN int, logger *slog.Logger) *AnalyticsService {
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &AnalyticsService{
		repo:   repo,
		cache:  cache,
		topN:   topN,
		logger: logger,
	}
}

func cached[T any](ctx context.Context, s *AnalyticsService, stat, key string, compute func(context.Context) (T, error)) (T, error) {
	var zero T

	w, err := s.repo.Watermark(ctx)
	if err != nil {
		s.logger.Error("database error", "op", "read watermark", "error", err)
		return zero, &StorageError{Op: "read watermark", Err: err}
	}

	v, hit, err := s.cache.GetOrCompute(w, key, func() (any, error) {
		return compute(ctx)
	})
	if err != nil {
		s.logger.Error("database error", "op", stat, "error", err)
		return zero, &StorageError{Op: stat, Err: err}
	}

	result := "miss"
	if hit {
		result = "hit"
	}
	metrics.AnalyticsCacheLookups.WithLabelValues(stat, result).Inc()

	return v.(T), nil
}

func (s *AnalyticsService) WordCount(ctx context.Context) (int64, error) {
	return cached(ctx, s, statWordCount, statWordCount, s.repo.WordCount)
}

func (s *AnalyticsService) AverageLength(ctx context.Context) (float64, error) {
	return cached(ctx, s, statAverageLength, statAverageLength, s.repo.AverageLength)
}

func (s *AnalyticsService) CharacterCount(ctx context.Context) (int64, error) {
	return cached(ctx, s, statCharacterCount, statCharacterCount, s.repo.CharacterCount)
}

func (s *AnalyticsService) MedianLength(ctx context.Context) (float64, error) {
	return cached(ctx, s, statMedianLength, statMedianLength, func(ctx context.Context) (float64, error) {
		lengths, err := s.repo.ContentLengths(ctx)
		if err != nil {
			return 0, err
		}
		values := make([]int, len(lengths))
		for i, nl := range lengths {
			values[i] = nl.Length
		}
		return textstats.Median(values), nil
	})
}

// TopNotes returns the three longest and the three shortest notes. Notes of
// equal length keep their id order.
func (s *AnalyticsService) TopNotes(ctx context.Context) (domain.TopNotes, error) {
	return cached(ctx, s, statTopNotes, statTopNotes, func(ctx context.Context) (domain.TopNotes, error) {
		lengths, err := s.repo.ContentLengths(ctx)
		if err != nil {
			return domain.TopNotes{}, err
		}

		longest := make([]domain.NoteLength, len(lengths))
		copy(longest, lengths)
		sort.SliceStable(longest, func(i, j int) bool { return longest[i].Length > longest[j].Length })

		shortest := make([]domain.NoteLength, len(lengths))
		copy(shortest, lengths)
		sort.SliceStable(shortest, func(i, j int) bool { return shortest[i].Length < shortest[j].Length })

		return domain.TopNotes{
			Longest:  firstN(longest, topNotesCount),
			Shortest: firstN(shortest, topNotesCount),
		}, nil
	})
}

func (s *AnalyticsService) MostCommonWords(ctx context.Context, topN int) ([]string, error) {
	key := fmt.Sprintf("%s:%d", statMostCommonWords, topN)
	return cached(ctx, s, statMostCommonWords, key, func(ctx context.Context) ([]string, error) {
		tokens, err := s.repo.Tokens(ctx)
		if err != nil {
			return nil, err
		}
		return textstats.TopN(textstats.Words(tokens), topN), nil
	})
}

func (s *AnalyticsService) CommonBigrams(ctx context.Context, topN int) ([]string, error) {
	return s.commonNGrams(ctx, statCommonBigrams, 2, topN)
}

func (s *AnalyticsService) CommonTrigrams(ctx context.Context, topN int) ([]string, error) {
	return s.commonNGrams(ctx, statCommonTrigrams, 3, topN)
}

// commonNGrams ranks windows over the token stream of the whole corpus, so a
// window may start in one note and end in the next.
func (s *AnalyticsService) commonNGrams(ctx context.Context, stat string, size, topN int) ([]string, error) {
	key := fmt.Sprintf("%s:%d", stat, topN)
	return cached(ctx, s, stat, key, func(ctx context.Context) ([]string, error) {
		tokens, err := s.repo.Tokens(ctx)
		if err != nil {
			return nil, err
		}
		return textstats.TopN(textstats.NGrams(tokens, size), topN), nil
	})
}

// Report computes all statistics with the configured top-N.
func (s *AnalyticsService) Report(ctx context.Context) (*domain.AnalyticsReport, error) {
	var (
		report domain.AnalyticsReport
		err    error
	)

	if report.TotalWordCount, err = s.WordCount(ctx); err != nil {
		return nil, err
	}
	if report.AverageNoteLength, err = s.AverageLength(ctx); err != nil {
		return nil, err
	}
	if report.MostCommonWords, err = s.MostCommonWords(ctx, s.topN); err != nil {
		return nil, err
	}
	if report.TopNotes, err = s.TopNotes(ctx); err != nil {
		return nil, err
	}
	if report.TotalCharacterCount, err = s.CharacterCount(ctx); err != nil {
		return nil, err
	}
	if report.MedianNoteLength, err = s.MedianLength(ctx); err != nil {
		return nil, err
	}
	if report.CommonBigrams, err = s.CommonBigrams(ctx, s.topN); err != nil {
		return nil, err
	}
	if report.CommonTrigrams, err = s.CommonTrigrams(ctx, s.topN); err != nil {
		return nil, err
	}

	return &report, nil
}

func firstN(lengths []domain.NoteLength, n int) []domain.NoteLength {
	if len(lengths) > n {
		return lengths[:n]
	}
	return lengths
}
