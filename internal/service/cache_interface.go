package service

import (
	"context"
	"time"

	"github.com/cypherlabdev/match-digest-bot/internal/models"
)

//go:generate mockgen -source=cache_interface.go -destination=../mocks/mock_cache.go -package=mocks

// Cache is an interface that abstracts prediction caching
// This allows for easier testing and mocking
type Cache interface {
	Get(ctx context.Context, day time.Time) ([]models.MatchPrediction, error)
	Set(ctx context.Context, day time.Time, predictions []models.MatchPrediction) error
	Ping(ctx context.Context) error
	Close() error
}
