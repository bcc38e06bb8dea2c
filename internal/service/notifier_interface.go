package service

import "context"

//go:generate mockgen -source=notifier_interface.go -destination=../mocks/mock_notifier.go -package=mocks

// Notifier delivers a finished text message to its configured destination
type Notifier interface {
	SendMessage(ctx context.Context, text string) error
}

type chatIDKey struct{}

// WithChatID returns a context that redirects notifier output to chatID
// instead of the configured chat
func WithChatID(ctx context.Context, chatID int64) context.Context {
	return context.WithValue(ctx, chatIDKey{}, chatID)
}

// ChatIDFromContext returns the chat set by WithChatID, or fallback
func ChatIDFromContext(ctx context.Context, fallback int64) int64 {
	if chatID, ok := ctx.Value(chatIDKey{}).(int64); ok && chatID != 0 {
		return chatID
	}
	return fallback
}
