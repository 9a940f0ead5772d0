package tts

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

func TestMurfProviderUnavailableWithoutKey(t *testing.T) {
	t.Setenv("MURF_API_KEY", "")
	p := NewMurfProvider(zerolog.Nop(), &MurfConfig{})

	assert.False(t, p.IsAvailable())
	_, err := p.Synthesize(context.Background(), &SynthesizeRequest{Text: "hello"})
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestMurfSynthesize(t *testing.T) {
	var captured murfRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("api-key"))
		json.NewDecoder(r.Body).Decode(&captured)
		json.NewEncoder(w).Encode(murfResponse{AudioFile: "https://cdn.example.com/audio.wav"})
	}))
	defer server.Close()

	p := NewMurfProvider(zerolog.Nop(), &MurfConfig{
		APIKey:      "secret",
		GenerateURL: server.URL,
	})

	resp, err := p.Synthesize(context.Background(), &SynthesizeRequest{
		Text:  "Your order has shipped.",
		Rate:  1.15,
		Pitch: 1.08,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/audio.wav", resp.AudioURL)
	assert.Equal(t, "murf", resp.Provider)

	assert.Equal(t, "en-US-natalie", captured.VoiceID)
	assert.Equal(t, "conversational", captured.Style)
	assert.Equal(t, "WAV", captured.Format)
	assert.Equal(t, 44100, captured.SampleRate)
	assert.Equal(t, 1.15, captured.Rate)
	assert.Equal(t, 1.08, captured.Pitch)
}

func TestMurfSynthesizeAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusPaymentRequired)
	}))
	defer server.Close()

	p := NewMurfProvider(zerolog.Nop(), &MurfConfig{APIKey: "k", GenerateURL: server.URL})
	_, err := p.Synthesize(context.Background(), &SynthesizeRequest{Text: "hi"})
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestMurfSynthesizeEmptyAudioFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(murfResponse{})
	}))
	defer server.Close()

	p := NewMurfProvider(zerolog.Nop(), &MurfConfig{APIKey: "k", GenerateURL: server.URL})
	_, err := p.Synthesize(context.Background(), &SynthesizeRequest{Text: "hi"})
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}
