package alerter

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewClient_DisabledWithoutToken(t *testing.T) {
	assert.Nil(t, NewClient(&Config{ChatID: 1}, discardLogger()))
	assert.Nil(t, NewClient(nil, discardLogger()))
}

func TestSendAlert(t *testing.T) {
	thread := int64(7)
	var got sendMessageRequest
	var path string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1}}`))
	}))
	defer srv.Close()

	client := NewClient(&Config{BotToken: "token", ChatID: -100, MessageThreadID: &thread, APIBaseURL: srv.URL}, discardLogger())
	require.NotNil(t, client)

	require.NoError(t, client.SendAlert(context.Background(), "job failed"))
	assert.Equal(t, "/bottoken/sendMessage", path)
	assert.Equal(t, int64(-100), got.ChatID)
	assert.Equal(t, "job failed", got.Text)
	require.NotNil(t, got.MessageThreadID)
	assert.Equal(t, thread, *got.MessageThreadID)
}

func TestSendAlert_TruncatesLongMessages(t *testing.T) {
	var got sendMessageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := NewClient(&Config{BotToken: "t", ChatID: 1, APIBaseURL: srv.URL}, discardLogger())
	require.NoError(t, client.SendAlert(context.Background(), strings.Repeat("ж", maxMessageLength+10)))
	assert.Len(t, []rune(got.Text), maxMessageLength)
}

func TestSendAlert_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"chat not found"}`))
	}))
	defer srv.Close()

	client := NewClient(&Config{BotToken: "t", ChatID: 1, APIBaseURL: srv.URL}, discardLogger())
	err := client.SendAlert(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestSendAlert_NilClient(t *testing.T) {
	var client *Client
	assert.Error(t, client.SendAlert(context.Background(), "x"))
}
