package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for Cortex Concierge
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Reasoning ReasoningConfig `yaml:"reasoning"`
	Speech    SpeechConfig    `yaml:"speech"`
	Voice     VoiceConfig     `yaml:"voice"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig defines HTTP server settings
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// ReasoningConfig defines the reasoning-service (LLM) connection settings
type ReasoningConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key,omitempty"`
	Model   string `yaml:"model"`
	Timeout string `yaml:"timeout,omitempty"`
}

// GetTimeout returns the reasoning timeout as a time.Duration
func (r *ReasoningConfig) GetTimeout() time.Duration {
	if r.Timeout == "" {
		return 30 * time.Second
	}
	d, err := time.ParseDuration(r.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// SpeechConfig defines speech-to-text settings
type SpeechConfig struct {
	Enabled bool   `yaml:"enabled"`
	APIKey  string `yaml:"api_key,omitempty"`
	Model   string `yaml:"model,omitempty"`
	Timeout string `yaml:"timeout,omitempty"`
}

// GetTimeout returns the transcription timeout as a time.Duration
func (s *SpeechConfig) GetTimeout() time.Duration {
	if s.Timeout == "" {
		return 30 * time.Second
	}
	d, err := time.ParseDuration(s.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// VoiceConfig defines text-to-speech settings
type VoiceConfig struct {
	Enabled bool   `yaml:"enabled"`
	APIKey  string `yaml:"api_key,omitempty"`
	VoiceID string `yaml:"voice_id,omitempty"`
	Style   string `yaml:"style,omitempty"`
	Timeout string `yaml:"timeout,omitempty"`
}

// GetTimeout returns the synthesis timeout as a time.Duration
func (v *VoiceConfig) GetTimeout() time.Duration {
	if v.Timeout == "" {
		return 15 * time.Second
	}
	d, err := time.ParseDuration(v.Timeout)
	if err != nil {
		return 15 * time.Second
	}
	return d
}

// LoggingConfig defines logging settings
type LoggingConfig struct {
	Level   string `yaml:"level"`
	Console bool   `yaml:"console"`
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.ApplyEnv()

	return cfg, nil
}

// Default returns a configuration with sensible defaults. The service is
// fully functional without a config file: reasoning and voice features
// degrade when their keys are absent.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8800,
		},
		Reasoning: ReasoningConfig{
			BaseURL: "https://api.groq.com/openai/v1",
			Model:   "llama-3.1-8b-instant",
		},
		Speech: SpeechConfig{
			Enabled: true,
			Model:   "whisper-large-v3-turbo",
		},
		Voice: VoiceConfig{
			Enabled: true,
			VoiceID: "en-US-natalie",
			Style:   "conversational",
		},
		Logging: LoggingConfig{
			Level:   "info",
			Console: false,
		},
	}
}

// ApplyEnv fills API keys from the environment when the file leaves them empty.
func (c *Config) ApplyEnv() {
	if c.Reasoning.APIKey == "" {
		c.Reasoning.APIKey = os.Getenv("GROQ_API_KEY")
	}
	if c.Speech.APIKey == "" {
		c.Speech.APIKey = os.Getenv("GROQ_API_KEY")
	}
	if c.Voice.APIKey == "" {
		c.Voice.APIKey = os.Getenv("MURF_API_KEY")
	}
	if model := os.Getenv("GROQ_MODEL"); model != "" {
		c.Reasoning.Model = model
	}
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.Host == "" {
		return fmt.Errorf("server host is required")
	}
	if c.Reasoning.BaseURL == "" {
		return fmt.Errorf("reasoning base_url is required")
	}
	if c.Reasoning.Model == "" {
		return fmt.Errorf("reasoning model is required")
	}
	return nil
}
