package notifier

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/match-digest-bot/internal/service"
)

// ErrEmptyMessage is returned when asked to send blank text
var ErrEmptyMessage = errors.New("message text is empty")

// TelegramConfig holds Telegram Bot API configuration
type TelegramConfig struct {
	Token       string
	ChatID      int64
	APIEndpoint string // Format string taking token and method; defaults to tgbotapi.APIEndpoint
}

// Telegram sends messages to a single chat through the Telegram Bot API.
// The bot is authorized on the first send, so an unreachable API fails
// that send instead of startup.
type Telegram struct {
	config     TelegramConfig
	httpClient *http.Client
	logger     zerolog.Logger

	mu  sync.Mutex
	bot *tgbotapi.BotAPI
}

// NewTelegram validates the settings and returns a notifier bound to the configured chat
func NewTelegram(config TelegramConfig, httpClient *http.Client, logger zerolog.Logger) (*Telegram, error) {
	if strings.TrimSpace(config.Token) == "" {
		return nil, fmt.Errorf("telegram token is required")
	}
	if config.ChatID == 0 {
		return nil, fmt.Errorf("telegram chat id is required")
	}

	if config.APIEndpoint == "" {
		config.APIEndpoint = tgbotapi.APIEndpoint
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Telegram{
		config:     config,
		httpClient: httpClient,
		logger:     logger.With().Str("component", "telegram_notifier").Logger(),
	}, nil
}

// client returns the authorized bot, calling getMe until it succeeds once
func (t *Telegram) client() (*tgbotapi.BotAPI, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.bot != nil {
		return t.bot, nil
	}

	bot, err := tgbotapi.NewBotAPIWithClient(t.config.Token, t.config.APIEndpoint, t.httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to authorize telegram bot: %w", err)
	}

	t.logger.Info().
		Str("bot", bot.Self.UserName).
		Int64("chat_id", t.config.ChatID).
		Msg("authorized telegram bot")

	t.bot = bot
	return bot, nil
}

// SendMessage sends text to the configured chat, or the chat set with service.WithChatID
func (t *Telegram) SendMessage(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	bot, err := t.client()
	if err != nil {
		return err
	}

	chatID := service.ChatIDFromContext(ctx, t.config.ChatID)
	sent, err := bot.Send(tgbotapi.NewMessage(chatID, text))
	if err != nil {
		return fmt.Errorf("telegram sendMessage failed: %w", err)
	}

	t.logger.Debug().
		Int("message_id", sent.MessageID).
		Int64("chat_id", chatID).
		Int("length", len(text)).
		Msg("sent telegram message")

	return nil
}
