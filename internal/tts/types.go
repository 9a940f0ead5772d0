// Package tts provides text-to-speech synthesis for the concierge's replies.
package tts

import (
	"context"
	"errors"
	"time"
)

// ErrProviderUnavailable is returned when a provider has no credentials or
// its upstream cannot be reached.
var ErrProviderUnavailable = errors.New("TTS provider unavailable")

// Provider is the interface all TTS providers implement.
type Provider interface {
	// Name returns the provider identifier (e.g., "murf").
	Name() string

	// IsAvailable reports whether the provider is configured.
	IsAvailable() bool

	// Synthesize converts text to an audio resource.
	Synthesize(ctx context.Context, req *SynthesizeRequest) (*SynthesizeResponse, error)
}

// SynthesizeRequest represents a synthesis request.
type SynthesizeRequest struct {
	Text    string  `json:"text"`
	VoiceID string  `json:"voice_id,omitempty"`
	Style   string  `json:"style,omitempty"`
	Rate    float64 `json:"rate,omitempty"`
	Pitch   float64 `json:"pitch,omitempty"`
}

// SynthesizeResponse represents a synthesis result. Providers here return a
// hosted audio URL rather than raw bytes.
type SynthesizeResponse struct {
	AudioURL       string        `json:"audio_url"`
	Provider       string        `json:"provider"`
	ProcessingTime time.Duration `json:"processing_time"`
}
