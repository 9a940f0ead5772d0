package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cortexhub/cortex-concierge/internal/agent"
	"github.com/cortexhub/cortex-concierge/internal/catalog"
	"github.com/cortexhub/cortex-concierge/internal/config"
	"github.com/cortexhub/cortex-concierge/internal/inference"
	"github.com/cortexhub/cortex-concierge/internal/logging"
	"github.com/cortexhub/cortex-concierge/internal/server"
	"github.com/cortexhub/cortex-concierge/internal/session"
	"github.com/cortexhub/cortex-concierge/internal/stt"
	"github.com/cortexhub/cortex-concierge/internal/tts"
)

const version = "1.0.0"

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("cortex-concierge", version)
		return
	}

	// A missing config file is fine: the service runs on defaults and
	// degrades the features whose API keys are absent.
	cfg, err := config.Load(*configPath)
	if err != nil {
		cfg = config.Default()
		cfg.ApplyEnv()
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "invalid config:", err)
		os.Exit(1)
	}

	rootLogger := logging.New(cfg.Logging.Level, cfg.Logging.Console)
	logger := logging.WithComponent(rootLogger, "main")
	logger.Info().Str("version", version).Msg("Starting Cortex Concierge")

	// Reasoning client. Without an API key the concierge still answers,
	// it just cannot pick tools or synthesize prose.
	var llm inference.Client
	if cfg.Reasoning.APIKey != "" {
		client, err := inference.NewOpenAIClient(&inference.OpenAIConfig{
			BaseURL: cfg.Reasoning.BaseURL,
			APIKey:  cfg.Reasoning.APIKey,
			Model:   cfg.Reasoning.Model,
			Timeout: cfg.Reasoning.GetTimeout(),
		}, rootLogger)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to create reasoning client")
			os.Exit(1)
		}
		llm = client
		if err := client.Health(); err != nil {
			logger.Warn().Err(err).Msg("Reasoning service unreachable at startup")
		}
	} else {
		logger.Warn().Msg("No reasoning API key, running in degraded mode")
	}

	var transcriber stt.Transcriber
	if cfg.Speech.Enabled {
		transcriber = stt.NewGroqWhisperProvider(rootLogger, &stt.GroqWhisperConfig{
			APIKey:  cfg.Speech.APIKey,
			Model:   cfg.Speech.Model,
			Timeout: cfg.Speech.GetTimeout(),
		})
		if !transcriber.IsAvailable() {
			logger.Warn().Msg("Speech recognition enabled but no API key configured")
		}
	}

	var speech tts.Provider
	if cfg.Voice.Enabled {
		speech = tts.NewMurfProvider(rootLogger, &tts.MurfConfig{
			APIKey:       cfg.Voice.APIKey,
			DefaultVoice: cfg.Voice.VoiceID,
			Style:        cfg.Voice.Style,
			Timeout:      cfg.Voice.GetTimeout(),
		})
		if !speech.IsAvailable() {
			logger.Warn().Msg("Voice synthesis enabled but no API key configured")
		}
	}

	store := catalog.NewSeededStore()
	sessions := session.NewManager()
	pipeline := agent.NewPipeline(store, sessions, llm, speech, rootLogger)

	srv := server.New(cfg, pipeline, llm, transcriber, speech, sessions, rootLogger)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("Server error")
			os.Exit(1)
		}
	}()
	logger.Info().Str("host", cfg.Server.Host).Int("port", cfg.Server.Port).Msg("Concierge ready")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server shutdown error")
	}
	logger.Info().Msg("Shutdown complete")
}
