package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
)

const murfGenerateURL = "https://api.murf.ai/v1/speech/generate"

// MurfProvider implements TTS using the Murf speech generation API.
type MurfProvider struct {
	apiKey string
	client *http.Client
	logger zerolog.Logger
	config *MurfConfig
}

// MurfConfig holds Murf TTS configuration.
type MurfConfig struct {
	APIKey       string        `json:"api_key"`
	GenerateURL  string        `json:"generate_url"`
	DefaultVoice string        `json:"default_voice"`
	Style        string        `json:"style"`
	Timeout      time.Duration `json:"timeout"`
}

// DefaultMurfConfig returns sensible defaults.
func DefaultMurfConfig() *MurfConfig {
	return &MurfConfig{
		GenerateURL:  murfGenerateURL,
		DefaultVoice: "en-US-natalie",
		Style:        "conversational",
		Timeout:      15 * time.Second,
	}
}

// NewMurfProvider creates a new Murf provider.
func NewMurfProvider(logger zerolog.Logger, config *MurfConfig) *MurfProvider {
	if config == nil {
		config = DefaultMurfConfig()
	}
	if config.GenerateURL == "" {
		config.GenerateURL = murfGenerateURL
	}
	if config.DefaultVoice == "" {
		config.DefaultVoice = "en-US-natalie"
	}
	if config.Style == "" {
		config.Style = "conversational"
	}
	if config.Timeout == 0 {
		config.Timeout = 15 * time.Second
	}

	apiKey := config.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("MURF_API_KEY")
	}

	return &MurfProvider{
		apiKey: apiKey,
		client: &http.Client{Timeout: config.Timeout},
		logger: logger.With().Str("provider", "murf-tts").Logger(),
		config: config,
	}
}

// Name returns the provider identifier.
func (p *MurfProvider) Name() string {
	return "murf"
}

// IsAvailable reports whether an API key is configured.
func (p *MurfProvider) IsAvailable() bool {
	return p.apiKey != ""
}

type murfRequest struct {
	VoiceID    string  `json:"voiceId"`
	Style      string  `json:"style"`
	Text       string  `json:"text"`
	Rate       float64 `json:"rate"`
	Pitch      float64 `json:"pitch"`
	Format     string  `json:"format"`
	SampleRate int     `json:"sampleRate"`
}

type murfResponse struct {
	AudioFile string `json:"audioFile"`
}

// Synthesize sends the text to Murf and returns the hosted audio URL. A
// single attempt, bounded by the configured timeout.
func (p *MurfProvider) Synthesize(ctx context.Context, req *SynthesizeRequest) (*SynthesizeResponse, error) {
	if !p.IsAvailable() {
		return nil, ErrProviderUnavailable
	}

	startTime := time.Now()

	voiceID := req.VoiceID
	if voiceID == "" {
		voiceID = p.config.DefaultVoice
	}
	style := req.Style
	if style == "" {
		style = p.config.Style
	}
	rate := req.Rate
	if rate == 0 {
		rate = 1.0
	}
	pitch := req.Pitch
	if pitch == 0 {
		pitch = 1.0
	}

	payload := murfRequest{
		VoiceID:    voiceID,
		Style:      style,
		Text:       req.Text,
		Rate:       rate,
		Pitch:      pitch,
		Format:     "WAV",
		SampleRate: 44100,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.GenerateURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("api-key", p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		p.logger.Error().Int("status", resp.StatusCode).Str("body", string(respBody)).Msg("Murf API error")
		return nil, fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode)
	}

	var result murfResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if result.AudioFile == "" {
		return nil, fmt.Errorf("%w: no audio file in response", ErrProviderUnavailable)
	}

	p.logger.Info().Str("audioUrl", result.AudioFile).Msg("Generated TTS audio")
	return &SynthesizeResponse{
		AudioURL:       result.AudioFile,
		Provider:       p.Name(),
		ProcessingTime: time.Since(startTime),
	}, nil
}
