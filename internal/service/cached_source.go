package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/match-digest-bot/internal/models"
)

// CachedSource serves today's predictions from the cache, falling back to the
// wrapped source on a miss
type CachedSource struct {
	source PredictionSource
	cache  Cache
	now    func() time.Time
	logger zerolog.Logger
}

// NewCachedSource wraps a prediction source with a cache
func NewCachedSource(source PredictionSource, cache Cache, logger zerolog.Logger) *CachedSource {
	return &CachedSource{
		source: source,
		cache:  cache,
		now:    time.Now,
		logger: logger.With().Str("component", "cached_source").Logger(),
	}
}

// GetTodayPredictions implements PredictionSource with a cache-first strategy
func (s *CachedSource) GetTodayPredictions(ctx context.Context) ([]models.MatchPrediction, error) {
	day := s.now().UTC()

	cached, err := s.cache.Get(ctx, day)
	if err == nil {
		s.logger.Debug().
			Int("count", len(cached)).
			Msg("cache hit for predictions")
		return cached, nil
	}

	// Log cache miss (but don't fail on cache errors)
	s.logger.Debug().Err(err).Msg("cache miss for predictions")

	predictions, err := s.source.GetTodayPredictions(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, day, predictions); err != nil {
		s.logger.Warn().
			Err(err).
			Int("count", len(predictions)).
			Msg("failed to cache predictions")
	}

	return predictions, nil
}
