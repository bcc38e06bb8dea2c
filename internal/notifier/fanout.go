package notifier

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/match-digest-bot/internal/service"
)

// Fanout delivers each message to a primary notifier and, once that
// succeeds, mirrors it to secondary notifiers. Only the primary's error is
// returned; secondary failures are logged.
type Fanout struct {
	primary     service.Notifier
	secondaries []service.Notifier
	logger      zerolog.Logger
}

// NewFanout creates a fan-out around primary
func NewFanout(primary service.Notifier, logger zerolog.Logger, secondaries ...service.Notifier) *Fanout {
	return &Fanout{
		primary:     primary,
		secondaries: secondaries,
		logger:      logger.With().Str("component", "notifier_fanout").Logger(),
	}
}

// SendMessage implements service.Notifier
func (f *Fanout) SendMessage(ctx context.Context, text string) error {
	if err := f.primary.SendMessage(ctx, text); err != nil {
		return err
	}

	for i, n := range f.secondaries {
		if err := n.SendMessage(ctx, text); err != nil {
			f.logger.Warn().
				Err(err).
				Int("secondary", i).
				Msg("secondary notifier failed, message already delivered")
		}
	}
	return nil
}
