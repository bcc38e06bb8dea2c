package notifier

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/match-digest-bot/internal/service"
)

// fakeBotAPI records getMe and sendMessage calls
type fakeBotAPI struct {
	mu       sync.Mutex
	getMe    int
	sent     []string
	chatIDs  []string
	failSend bool
}

func (f *fakeBotAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch {
	case strings.HasSuffix(r.URL.Path, "/getMe"):
		f.mu.Lock()
		f.getMe++
		f.mu.Unlock()
		w.Write([]byte(`{"ok":true,"result":{"id":42,"is_bot":true,"first_name":"Digest","username":"digest_bot"}}`))
	case strings.HasSuffix(r.URL.Path, "/sendMessage"):
		if f.failSend {
			w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
			return
		}
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		f.sent = append(f.sent, r.PostForm.Get("text"))
		f.chatIDs = append(f.chatIDs, r.PostForm.Get("chat_id"))
		f.mu.Unlock()
		w.Write([]byte(`{"ok":true,"result":{"message_id":7,"date":1760000000,"chat":{"id":-100123,"type":"channel"}}}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// setupTestTelegram creates a notifier backed by a fake Bot API
func setupTestTelegram(t *testing.T, api *fakeBotAPI) (*Telegram, *httptest.Server) {
	server := httptest.NewServer(api)

	notifier, err := NewTelegram(TelegramConfig{
		Token:       "123:abc",
		ChatID:      -100123,
		APIEndpoint: server.URL + "/bot%s/%s",
	}, server.Client(), zerolog.Nop())
	require.NoError(t, err)

	return notifier, server
}

// TestNewTelegram_Validation tests required settings
func TestNewTelegram_Validation(t *testing.T) {
	tests := []struct {
		name   string
		config TelegramConfig
	}{
		{name: "Missing token", config: TelegramConfig{ChatID: 1}},
		{name: "Blank token", config: TelegramConfig{Token: "  ", ChatID: 1}},
		{name: "Missing chat", config: TelegramConfig{Token: "123:abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier, err := NewTelegram(tt.config, nil, zerolog.Nop())

			assert.Error(t, err)
			assert.Nil(t, notifier)
		})
	}
}

// TestSendMessage_Unauthorized tests that a rejected token fails the send, not construction
func TestSendMessage_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":false,"error_code":401,"description":"Unauthorized"}`))
	}))
	defer server.Close()

	notifier, err := NewTelegram(TelegramConfig{
		Token:       "bad",
		ChatID:      1,
		APIEndpoint: server.URL + "/bot%s/%s",
	}, server.Client(), zerolog.Nop())
	require.NoError(t, err)

	err = notifier.SendMessage(context.Background(), "hola")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to authorize telegram bot")
}

// TestSendMessage_UnreachableAPI tests that startup does not depend on the Bot API
func TestSendMessage_UnreachableAPI(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	endpoint := server.URL + "/bot%s/%s"
	server.Close()

	notifier, err := NewTelegram(TelegramConfig{
		Token:       "123:abc",
		ChatID:      1,
		APIEndpoint: endpoint,
	}, nil, zerolog.Nop())
	require.NoError(t, err)

	assert.Error(t, notifier.SendMessage(context.Background(), "hola"))
}

// TestSendMessage_AuthorizesOnce tests that getMe runs only before the first send
func TestSendMessage_AuthorizesOnce(t *testing.T) {
	api := &fakeBotAPI{}
	notifier, server := setupTestTelegram(t, api)
	defer server.Close()

	assert.Equal(t, 0, api.getMe)

	require.NoError(t, notifier.SendMessage(context.Background(), "uno"))
	require.NoError(t, notifier.SendMessage(context.Background(), "dos"))

	assert.Equal(t, 1, api.getMe)
	assert.Equal(t, []string{"uno", "dos"}, api.sent)
}

// TestSendMessage_RequestedChat tests delivery to a chat set on the context
func TestSendMessage_RequestedChat(t *testing.T) {
	api := &fakeBotAPI{}
	notifier, server := setupTestTelegram(t, api)
	defer server.Close()

	ctx := service.WithChatID(context.Background(), 987654)
	require.NoError(t, notifier.SendMessage(ctx, "hola"))

	require.Len(t, api.chatIDs, 1)
	assert.Equal(t, "987654", api.chatIDs[0])
}

// TestSendMessage_Success tests delivery to the configured chat
func TestSendMessage_Success(t *testing.T) {
	api := &fakeBotAPI{}
	notifier, server := setupTestTelegram(t, api)
	defer server.Close()

	text := "⚽ PREDICCIONES PRE-PARTIDO ⚽\n\n🔥 A vs B\n"
	err := notifier.SendMessage(context.Background(), text)

	require.NoError(t, err)
	require.Len(t, api.sent, 1)
	assert.Equal(t, text, api.sent[0])
	assert.Equal(t, "-100123", api.chatIDs[0])
}

// TestSendMessage_APIError tests a sendMessage rejection
func TestSendMessage_APIError(t *testing.T) {
	api := &fakeBotAPI{}
	notifier, server := setupTestTelegram(t, api)
	defer server.Close()
	api.failSend = true

	err := notifier.SendMessage(context.Background(), "hola")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

// TestSendMessage_Empty tests that blank text is rejected without a call
func TestSendMessage_Empty(t *testing.T) {
	api := &fakeBotAPI{}
	notifier, server := setupTestTelegram(t, api)
	defer server.Close()

	err := notifier.SendMessage(context.Background(), " \n")

	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Empty(t, api.sent)
}

// TestSendMessage_ContextCanceled tests that a canceled context skips the call
func TestSendMessage_ContextCanceled(t *testing.T) {
	api := &fakeBotAPI{}
	notifier, server := setupTestTelegram(t, api)
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := notifier.SendMessage(ctx, "hola")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, api.sent)
}
