package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/cypherlabdev/match-digest-bot/internal/bootstrap"
	"github.com/cypherlabdev/match-digest-bot/internal/config"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig(config.ResolvePath(config.DefaultPath))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Setup logger
	logger := bootstrap.SetupLogger(cfg.Logging, "match-digest-bot")
	logger.Info().Msg("starting match-digest-bot")

	ctx := context.Background()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize")
	}
	defer app.Close()

	// Pre-game digest, then live alerts
	app.Service.Run(ctx)

	app.PushMetrics(cfg.Metrics)
	logger.Info().Msg("run complete")
}
