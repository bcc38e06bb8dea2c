package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cypherlabdev/match-digest-bot/internal/cache"
	"github.com/cypherlabdev/match-digest-bot/internal/config"
	"github.com/cypherlabdev/match-digest-bot/internal/football"
	"github.com/cypherlabdev/match-digest-bot/internal/messaging"
	"github.com/cypherlabdev/match-digest-bot/internal/metrics"
	"github.com/cypherlabdev/match-digest-bot/internal/notifier"
	"github.com/cypherlabdev/match-digest-bot/internal/service"
	"github.com/cypherlabdev/match-digest-bot/pkg/digest"
)

// App holds the wired components shared by the entry points
type App struct {
	Source  service.PredictionSource
	Service *service.DigestService
	Metrics *metrics.Metrics
	Cache   *cache.RedisCache // nil when caching is disabled

	closers []func() error
	logger  zerolog.Logger
}

// SetupLogger configures the logger based on config
func SetupLogger(cfg config.LoggingConfig, serviceName string) zerolog.Logger {
	// Set log level
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Set format
	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	return log.Logger.With().Str("service", serviceName).Logger()
}

// New wires the prediction source, notifiers and digest service from config
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*App, error) {
	app := &App{
		Metrics: metrics.NewMetrics(),
		logger:  logger,
	}

	httpClient := &http.Client{}

	// Prediction source, optionally behind the Redis cache
	var source service.PredictionSource = football.NewClient(
		football.ClientConfig{
			BaseURL:    cfg.Football.BaseURL,
			APIKey:     cfg.Football.APIKey,
			Timeout:    cfg.Football.Timeout,
			MaxMatches: cfg.Football.MaxMatches,
			Thresholds: cfg.Prediction.ToThresholds(),
		},
		httpClient,
		logger,
	)

	if cfg.Redis.CacheEnabled() {
		redisCache := cache.NewRedisCache(
			cache.RedisCacheConfig{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
				TTL:      cfg.Redis.TTL,
			},
			logger,
		)
		app.closers = append(app.closers, redisCache.Close)

		if err := redisCache.Ping(ctx); err != nil {
			logger.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unavailable, predictions will not be cached")
		} else {
			logger.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
			app.Cache = redisCache
			source = service.NewCachedSource(source, redisCache, logger)
		}
	}
	app.Source = source

	// Notifiers
	telegram, err := notifier.NewTelegram(
		notifier.TelegramConfig{
			Token:       cfg.Telegram.Token,
			ChatID:      cfg.Telegram.ChatID,
			APIEndpoint: cfg.Telegram.APIEndpoint,
		},
		httpClient,
		logger,
	)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to create telegram notifier: %w", err)
	}

	var out service.Notifier = telegram
	if cfg.Kafka.PublishEnabled() {
		publisher := messaging.NewKafkaPublisher(
			messaging.KafkaPublisherConfig{
				Brokers:      cfg.Kafka.Brokers,
				Topic:        cfg.Kafka.Topic,
				ChatID:       cfg.Telegram.ChatID,
				WriteTimeout: cfg.Kafka.WriteTimeout,
			},
			logger,
		)
		app.closers = append(app.closers, publisher.Close)
		out = notifier.NewFanout(telegram, logger, publisher)
		logger.Info().Str("topic", cfg.Kafka.Topic).Msg("publishing digest events to Kafka")
	}

	app.Service = service.NewDigestService(
		source,
		out,
		digest.NewBuilder(logger),
		app.Metrics,
		logger,
	)

	return app, nil
}

// PushMetrics pushes the run's metrics when a Pushgateway is configured
func (a *App) PushMetrics(cfg config.MetricsConfig) {
	if cfg.PushURL == "" {
		return
	}
	if err := a.Metrics.Push(cfg.PushURL, cfg.Job); err != nil {
		a.logger.Warn().Err(err).Str("url", cfg.PushURL).Msg("failed to push metrics")
		return
	}
	a.logger.Debug().Str("url", cfg.PushURL).Msg("pushed metrics")
}

// Close releases the Redis and Kafka connections
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn().Err(err).Msg("failed to close resource")
		}
	}
}
