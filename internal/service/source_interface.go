package service

import (
	"context"

	"github.com/cypherlabdev/match-digest-bot/internal/models"
)

//go:generate mockgen -source=source_interface.go -destination=../mocks/mock_source.go -package=mocks

// PredictionSource supplies today's match predictions.
// An empty result is a non-nil, zero-length slice.
type PredictionSource interface {
	GetTodayPredictions(ctx context.Context) ([]models.MatchPrediction, error)
}
