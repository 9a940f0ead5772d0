package stt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGroqWhisperProvider(t *testing.T) {
	t.Run("with default config", func(t *testing.T) {
		p := NewGroqWhisperProvider(zerolog.Nop(), nil)
		assert.Equal(t, "whisper-large-v3-turbo", p.config.Model)
		assert.Equal(t, groqTranscriptionURL, p.config.URL)
	})

	t.Run("with custom config", func(t *testing.T) {
		p := NewGroqWhisperProvider(zerolog.Nop(), &GroqWhisperConfig{Model: "whisper-large-v3", Language: "fr"})
		assert.Equal(t, "whisper-large-v3", p.config.Model)
		assert.Equal(t, "fr", p.config.Language)
	})
}

func TestTranscribe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper-large-v3-turbo", r.FormValue("model"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "clip.webm", header.Filename)

		w.Write([]byte(`{"text": "show me waterproof shoes", "language": "en"}`))
	}))
	defer server.Close()

	p := NewGroqWhisperProvider(zerolog.Nop(), &GroqWhisperConfig{APIKey: "k", URL: server.URL})
	resp, err := p.Transcribe(context.Background(), &TranscribeRequest{
		Audio:    []byte("fake-webm-bytes"),
		Filename: "clip.webm",
	})
	require.NoError(t, err)
	assert.Equal(t, "show me waterproof shoes", resp.Text)
	assert.Equal(t, "en", resp.Language)
}

func TestTranscribeFailures(t *testing.T) {
	t.Run("no api key", func(t *testing.T) {
		t.Setenv("GROQ_API_KEY", "")
		p := NewGroqWhisperProvider(zerolog.Nop(), &GroqWhisperConfig{})
		assert.False(t, p.IsAvailable())
		_, err := p.Transcribe(context.Background(), &TranscribeRequest{Audio: []byte("x")})
		assert.ErrorIs(t, err, ErrTranscriptionFailed)
	})

	t.Run("empty audio", func(t *testing.T) {
		p := NewGroqWhisperProvider(zerolog.Nop(), &GroqWhisperConfig{APIKey: "k"})
		_, err := p.Transcribe(context.Background(), &TranscribeRequest{})
		assert.ErrorIs(t, err, ErrAudioEmpty)
	})

	t.Run("api error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad audio", http.StatusBadRequest)
		}))
		defer server.Close()

		p := NewGroqWhisperProvider(zerolog.Nop(), &GroqWhisperConfig{APIKey: "k", URL: server.URL})
		_, err := p.Transcribe(context.Background(), &TranscribeRequest{Audio: []byte("x")})
		assert.ErrorIs(t, err, ErrTranscriptionFailed)
	})

	t.Run("unintelligible audio yields empty text", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"text": ""}`))
		}))
		defer server.Close()

		p := NewGroqWhisperProvider(zerolog.Nop(), &GroqWhisperConfig{APIKey: "k", URL: server.URL})
		_, err := p.Transcribe(context.Background(), &TranscribeRequest{Audio: []byte("x")})
		assert.ErrorIs(t, err, ErrTranscriptionFailed)
	})
}
