package inference

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenAIClient(t *testing.T) {
	_, err := NewOpenAIClient(&OpenAIConfig{}, zerolog.Nop())
	assert.Error(t, err, "base URL is required")

	c, err := NewOpenAIClient(&OpenAIConfig{BaseURL: "http://localhost:1234", Model: "m"}, zerolog.Nop())
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestComplete(t *testing.T) {
	var captured chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		json.NewDecoder(r.Body).Decode(&captured)

		json.NewEncoder(w).Encode(chatResponse{
			Model:   "llama-3.1-8b-instant",
			Choices: []chatChoice{{Message: chatMessage{Role: "assistant", Content: `{"ok":true}`}}},
			Usage:   chatUsage{TotalTokens: 42},
		})
	}))
	defer server.Close()

	c, err := NewOpenAIClient(&OpenAIConfig{BaseURL: server.URL, APIKey: "test-key", Model: "llama-3.1-8b-instant"}, zerolog.Nop())
	require.NoError(t, err)

	resp, err := c.Complete(context.Background(), &Request{
		System:   "be terse",
		User:     "hello",
		JSONMode: true,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, resp.Content)
	assert.Equal(t, 42, resp.TokensUsed)

	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	require.NotNil(t, captured.ResponseFormat)
	assert.Equal(t, "json_object", captured.ResponseFormat.Type)
}

func TestCompleteAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	c, _ := NewOpenAIClient(&OpenAIConfig{BaseURL: server.URL, Model: "m"}, zerolog.Nop())
	_, err := c.Complete(context.Background(), &Request{User: "hi"})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCompleteUnreachable(t *testing.T) {
	c, _ := NewOpenAIClient(&OpenAIConfig{BaseURL: "http://127.0.0.1:1", Model: "m"}, zerolog.Nop())
	_, err := c.Complete(context.Background(), &Request{User: "hi"})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCompleteEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatResponse{Model: "m"})
	}))
	defer server.Close()

	c, _ := NewOpenAIClient(&OpenAIConfig{BaseURL: server.URL, Model: "m"}, zerolog.Nop())
	_, err := c.Complete(context.Background(), &Request{User: "hi"})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHealth(t *testing.T) {
	c, _ := NewOpenAIClient(&OpenAIConfig{BaseURL: "http://x", Model: "m"}, zerolog.Nop())
	assert.Error(t, c.Health())

	c, _ = NewOpenAIClient(&OpenAIConfig{BaseURL: "http://x", APIKey: "k", Model: "m"}, zerolog.Nop())
	assert.NoError(t, c.Health())
}
