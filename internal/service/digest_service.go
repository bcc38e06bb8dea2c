package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/match-digest-bot/internal/metrics"
	"github.com/cypherlabdev/match-digest-bot/internal/models"
	"github.com/cypherlabdev/match-digest-bot/pkg/digest"
)

// DigestService builds the pre-game digest and hands it to the notifier
type DigestService struct {
	source   PredictionSource
	notifier Notifier
	builder  *digest.Builder
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewDigestService creates a new digest service
func NewDigestService(
	source PredictionSource,
	notifier Notifier,
	builder *digest.Builder,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *DigestService {
	return &DigestService{
		source:   source,
		notifier: notifier,
		builder:  builder,
		metrics:  m,
		logger:   logger.With().Str("component", "digest_service").Logger(),
	}
}

// Run sends the pre-game digest and then the live alerts.
// A failure in one never stops the other.
func (s *DigestService) Run(ctx context.Context) {
	s.SendPreGamePredictions(ctx)
	s.SendLiveMatchAlerts(ctx)
}

// SendPreGamePredictions fetches today's predictions and dispatches the digest.
// Failures are reported through the notifier, never returned.
func (s *DigestService) SendPreGamePredictions(ctx context.Context) {
	s.guard(ctx, digest.PredictionsErrorPrefix, func() error {
		predictions, err := s.source.GetTodayPredictions(ctx)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to get predictions")
			return err
		}
		s.metrics.PredictionsFetched.Add(float64(len(predictions)))

		return s.BuildAndDispatch(ctx, predictions)
	})
}

// SendLiveMatchAlerts dispatches the live alerts placeholder
func (s *DigestService) SendLiveMatchAlerts(ctx context.Context) {
	s.guard(ctx, digest.LiveErrorPrefix, func() error {
		return s.dispatch(ctx, metrics.KindLiveStub, digest.LiveStubNotice)
	})
}

// BuildAndDispatch sends the no-matches notice for an empty input, otherwise
// one digest covering the qualifying predictions. Nothing is sent when none
// qualify.
func (s *DigestService) BuildAndDispatch(ctx context.Context, predictions []models.MatchPrediction) error {
	if len(predictions) == 0 {
		return s.dispatch(ctx, metrics.KindNoMatches, digest.NoMatchesNotice)
	}

	d := s.builder.Build(predictions)
	if d.Empty() {
		s.logger.Info().
			Int("prediction_count", len(predictions)).
			Msg("no predictions qualify, nothing sent")
		return nil
	}

	s.metrics.QualifyingPredictions.Add(float64(d.Count))

	if err := s.dispatch(ctx, metrics.KindDigest, d.Text); err != nil {
		return err
	}

	s.logger.Info().
		Int("prediction_count", len(predictions)).
		Int("qualifying_count", d.Count).
		Msg("sent pre-game digest")

	return nil
}

// dispatch sends one message and records the outcome.
// The notifier's error is returned as-is so notices quote it verbatim.
func (s *DigestService) dispatch(ctx context.Context, kind, text string) error {
	err := s.notifier.SendMessage(ctx, text)
	s.metrics.ObserveDispatch(kind, err)
	if err != nil {
		s.logger.Error().Err(err).Str("kind", kind).Msg("failed to send message")
		return err
	}
	return nil
}

// guard runs fn and converts any error or panic into an error notice
// carrying the failure's own description
func (s *DigestService) guard(ctx context.Context, prefix string, fn func() error) {
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%v", r)
			}
		}()
		return fn()
	}()
	if err == nil {
		return
	}

	s.logger.Warn().Err(err).Msg("responsibility failed, sending error notice")

	if sendErr := s.dispatch(ctx, metrics.KindError, digest.ErrorNotice(prefix, err)); sendErr != nil {
		s.logger.Error().
			Err(sendErr).
			AnErr("cause", err).
			Msg("failed to send error notice")
	}
}
