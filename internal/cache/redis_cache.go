package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/match-digest-bot/internal/models"
)

// ErrNotFound is returned when no predictions are cached for a day
var ErrNotFound = errors.New("predictions not found in cache")

// RedisCache caches a day's match predictions in Redis
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// RedisCacheConfig holds Redis cache configuration
type RedisCacheConfig struct {
	Addr     string // e.g., "localhost:6379"
	Password string
	DB       int
	TTL      time.Duration // e.g., 30 * time.Minute
}

// NewRedisCache creates a new Redis cache
func NewRedisCache(config RedisCacheConfig, logger zerolog.Logger) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	return &RedisCache{
		client: client,
		ttl:    config.TTL,
		logger: logger.With().Str("component", "redis_cache").Logger(),
	}
}

// Key returns the Redis key for a day: predictions:{YYYY-MM-DD}
func Key(day time.Time) string {
	return fmt.Sprintf("predictions:%s", day.UTC().Format(time.DateOnly))
}

// Set caches the predictions for a day
func (c *RedisCache) Set(ctx context.Context, day time.Time, predictions []models.MatchPrediction) error {
	key := Key(day)

	if predictions == nil {
		predictions = []models.MatchPrediction{}
	}

	data, err := json.Marshal(predictions)
	if err != nil {
		return fmt.Errorf("failed to marshal predictions: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in Redis: %w", err)
	}

	c.logger.Debug().
		Str("key", key).
		Int("count", len(predictions)).
		Dur("ttl", c.ttl).
		Msg("cached predictions")

	return nil
}

// Get retrieves the cached predictions for a day
func (c *RedisCache) Get(ctx context.Context, day time.Time) ([]models.MatchPrediction, error) {
	key := Key(day)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to get from Redis: %w", err)
	}

	var predictions []models.MatchPrediction
	if err := json.Unmarshal(data, &predictions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal predictions: %w", err)
	}
	if predictions == nil {
		predictions = []models.MatchPrediction{}
	}

	return predictions, nil
}

// Ping checks Redis connection
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}
