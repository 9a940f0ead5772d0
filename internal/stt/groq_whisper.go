package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
)

const groqTranscriptionURL = "https://api.groq.com/openai/v1/audio/transcriptions"

// GroqWhisperProvider implements STT using Groq's Whisper API. Groq accepts
// WAV, MP3 and WebM uploads directly, so browser recordings are forwarded
// without conversion.
type GroqWhisperProvider struct {
	apiKey string
	client *http.Client
	logger zerolog.Logger
	config *GroqWhisperConfig
}

// GroqWhisperConfig holds Groq Whisper configuration.
type GroqWhisperConfig struct {
	APIKey   string        `json:"api_key"`
	URL      string        `json:"url"`
	Model    string        `json:"model"`
	Language string        `json:"language"`
	Timeout  time.Duration `json:"timeout"`
}

// DefaultGroqWhisperConfig returns sensible defaults.
func DefaultGroqWhisperConfig() *GroqWhisperConfig {
	return &GroqWhisperConfig{
		URL:     groqTranscriptionURL,
		Model:   "whisper-large-v3-turbo",
		Timeout: 30 * time.Second,
	}
}

// NewGroqWhisperProvider creates a new Groq Whisper provider.
func NewGroqWhisperProvider(logger zerolog.Logger, config *GroqWhisperConfig) *GroqWhisperProvider {
	if config == nil {
		config = DefaultGroqWhisperConfig()
	}
	if config.URL == "" {
		config.URL = groqTranscriptionURL
	}
	if config.Model == "" {
		config.Model = "whisper-large-v3-turbo"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	apiKey := config.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GROQ_API_KEY")
	}

	return &GroqWhisperProvider{
		apiKey: apiKey,
		client: &http.Client{Timeout: config.Timeout},
		logger: logger.With().Str("provider", "groq-whisper").Logger(),
		config: config,
	}
}

// Name returns the provider identifier.
func (p *GroqWhisperProvider) Name() string {
	return "groq-whisper"
}

// IsAvailable reports whether an API key is configured.
func (p *GroqWhisperProvider) IsAvailable() bool {
	return p.apiKey != ""
}

// Transcribe sends the audio to Groq's Whisper API.
func (p *GroqWhisperProvider) Transcribe(ctx context.Context, req *TranscribeRequest) (*TranscribeResponse, error) {
	startTime := time.Now()

	if p.apiKey == "" {
		return nil, fmt.Errorf("%w: Groq API key not configured", ErrTranscriptionFailed)
	}
	if len(req.Audio) == 0 {
		return nil, ErrAudioEmpty
	}

	filename := req.Filename
	if filename == "" {
		filename = "audio.wav"
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(req.Audio); err != nil {
		return nil, fmt.Errorf("write audio data: %w", err)
	}
	if err := writer.WriteField("model", p.config.Model); err != nil {
		return nil, fmt.Errorf("write model field: %w", err)
	}
	if p.config.Language != "" {
		if err := writer.WriteField("language", p.config.Language); err != nil {
			return nil, fmt.Errorf("write language field: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.URL, &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	p.logger.Debug().Int("audioBytes", len(req.Audio)).Msg("Sending audio to Groq Whisper")
	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTranscriptionFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		p.logger.Error().Int("status", resp.StatusCode).Str("body", string(body)).Msg("Groq API error")
		return nil, fmt.Errorf("%w: status %d", ErrTranscriptionFailed, resp.StatusCode)
	}

	var result struct {
		Text     string `json:"text"`
		Language string `json:"language"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: parse response: %v", ErrTranscriptionFailed, err)
	}
	if result.Text == "" {
		return nil, fmt.Errorf("%w: empty transcription", ErrTranscriptionFailed)
	}

	return &TranscribeResponse{
		Text:           result.Text,
		Language:       result.Language,
		ProcessingTime: time.Since(startTime),
	}, nil
}
