package config

import (
	"os"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	yaml := []byte(`
server:
  port: 8800
  host: localhost
reasoning:
  base_url: https://api.groq.com/openai/v1
  model: llama-3.1-8b-instant
  timeout: 20s
voice:
  enabled: true
  voice_id: en-US-natalie
`)
	f, _ := os.CreateTemp("", "config-*.yaml")
	f.Write(yaml)
	f.Close()
	defer os.Remove(f.Name())

	cfg, err := Load(f.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8800 {
		t.Errorf("Expected port 8800, got %d", cfg.Server.Port)
	}
	if cfg.Reasoning.GetTimeout().Seconds() != 20 {
		t.Errorf("Expected 20s reasoning timeout, got %v", cfg.Reasoning.GetTimeout())
	}
	if cfg.Voice.VoiceID != "en-US-natalie" {
		t.Errorf("Expected voice en-US-natalie, got %s", cfg.Voice.VoiceID)
	}
}

func TestDefaultsApplied(t *testing.T) {
	f, _ := os.CreateTemp("", "config-*.yaml")
	f.Write([]byte("server:\n  port: 9000\n  host: localhost\n"))
	f.Close()
	defer os.Remove(f.Name())

	cfg, err := Load(f.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Reasoning.Model != "llama-3.1-8b-instant" {
		t.Errorf("Expected default model, got %s", cfg.Reasoning.Model)
	}
	if cfg.Voice.GetTimeout().Seconds() != 15 {
		t.Errorf("Expected default 15s voice timeout, got %v", cfg.Voice.GetTimeout())
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestValidateInvalidPort(t *testing.T) {
	cfg := Default()
	cfg.Server.Port = -1
	if err := cfg.Validate(); err == nil {
		t.Error("Expected validation error for invalid port")
	}
}

func TestValidateMissingModel(t *testing.T) {
	cfg := Default()
	cfg.Reasoning.Model = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Expected validation error for missing model")
	}
}
