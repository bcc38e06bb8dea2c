package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cypherlabdev/match-digest-bot/internal/models"
)

// Config holds all configuration for match-digest-bot
type Config struct {
	Server     ServerConfig
	Football   FootballConfig
	Prediction PredictionConfig
	Telegram   TelegramConfig
	Kafka      KafkaConfig
	Redis      RedisConfig
	Metrics    MetricsConfig
	Logging    LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// FootballConfig holds api-sports configuration
type FootballConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	APIKey     string        `mapstructure:"api_key"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxMatches int           `mapstructure:"max_matches"`
}

// PredictionConfig holds the over 2.5 thresholds
type PredictionConfig struct {
	MinAvgGoals  float64 `mapstructure:"min_avg_goals"`
	MinOver25Pct int     `mapstructure:"min_over25_pct"`
}

// TelegramConfig holds Telegram Bot API configuration
type TelegramConfig struct {
	Token       string `mapstructure:"token"`
	ChatID      int64  `mapstructure:"chat_id"`
	APIEndpoint string `mapstructure:"api_endpoint"`
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Brokers      []string      `mapstructure:"brokers"`
	Topic        string        `mapstructure:"topic"` // Empty disables publishing
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr     string // Empty disables the prediction cache
	Password string
	DB       int
	TTL      time.Duration
}

// MetricsConfig holds Prometheus Pushgateway configuration
type MetricsConfig struct {
	PushURL string `mapstructure:"push_url"` // Empty disables pushing
	Job     string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
}

// DefaultPath is the config file the entry points look for
const DefaultPath = "config/config.yaml"

// ResolvePath returns path if the file exists, or "" to run on defaults and environment
func ResolvePath(path string) string {
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	v.SetDefault("football.base_url", "https://v3.football.api-sports.io")
	v.SetDefault("football.api_key", "")
	v.SetDefault("football.timeout", 10*time.Second)
	v.SetDefault("football.max_matches", 5)

	v.SetDefault("prediction.min_avg_goals", 2.5)
	v.SetDefault("prediction.min_over25_pct", 10)

	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.chat_id", 0)
	v.SetDefault("telegram.api_endpoint", "")

	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "")
	v.SetDefault("kafka.write_timeout", 10*time.Second)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 30*time.Minute)

	v.SetDefault("metrics.push_url", "")
	v.SetDefault("metrics.job", "match-digest-bot")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Read config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Override with environment variables
	v.SetEnvPrefix("MATCH_DIGEST")
	v.AutomaticEnv()
	// Replace . with _ for environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Unmarshal to struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// ToThresholds converts config to prediction thresholds
func (c *PredictionConfig) ToThresholds() models.PredictionThresholds {
	return models.PredictionThresholds{
		MinAvgGoals:  c.MinAvgGoals,
		MinOver25Pct: c.MinOver25Pct,
	}
}

// CacheEnabled reports whether a Redis address is configured
func (c *RedisConfig) CacheEnabled() bool {
	return c.Addr != ""
}

// PublishEnabled reports whether digest events should be published to Kafka
func (c *KafkaConfig) PublishEnabled() bool {
	return len(c.Brokers) > 0 && c.Topic != ""
}
