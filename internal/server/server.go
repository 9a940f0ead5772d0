// Package server exposes the concierge over HTTP: JSON chat, audio uploads,
// a WebSocket channel, and operational endpoints.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/cortexhub/cortex-concierge/internal/agent"
	"github.com/cortexhub/cortex-concierge/internal/config"
	"github.com/cortexhub/cortex-concierge/internal/inference"
	"github.com/cortexhub/cortex-concierge/internal/metrics"
	"github.com/cortexhub/cortex-concierge/internal/session"
	"github.com/cortexhub/cortex-concierge/internal/stt"
	"github.com/cortexhub/cortex-concierge/internal/tts"
)

// maxAudioUpload caps speech submissions at 10 MiB.
const maxAudioUpload = 10 << 20

// Server represents the HTTP server.
type Server struct {
	cfg         *config.Config
	pipeline    *agent.Pipeline
	llm         inference.Client
	transcriber stt.Transcriber
	speech      tts.Provider
	sessions    *session.Manager
	httpServer  *http.Server
	upgrader    websocket.Upgrader
	startTime   time.Time
	logger      zerolog.Logger
}

// ChatRequest is the JSON body of POST /chat.
type ChatRequest struct {
	Text      string `json:"text"`
	SessionID string `json:"session_id,omitempty"`
}

// EmotionData mirrors the classifier result on the wire.
type EmotionData struct {
	Emotion    string  `json:"emotion"`
	Confidence float64 `json:"confidence"`
	Intensity  string  `json:"intensity"`
}

// ChatResponse is the reply for /chat, /speech and the WebSocket channel.
// AudioURL is null when speech synthesis is off or failed.
type ChatResponse struct {
	ResponseText string      `json:"response_text"`
	EmotionData  EmotionData `json:"emotion_data"`
	ToolUsed     string      `json:"tool_used"`
	SessionID    string      `json:"session_id"`
	AudioURL     *string     `json:"audio_url"`
	Transcript   string      `json:"transcript,omitempty"`
}

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Uptime    string `json:"uptime"`
	Timestamp string `json:"timestamp"`
}

// StatusResponse represents the full system status.
type StatusResponse struct {
	Status    string         `json:"status"`
	Version   string         `json:"version"`
	Uptime    string         `json:"uptime"`
	Services  map[string]any `json:"services"`
	Sessions  int            `json:"sessions"`
	Timestamp string         `json:"timestamp"`
}

// New creates the HTTP server. The reasoning client, transcriber and speech
// provider may each be nil; the affected endpoints degrade rather than fail.
func New(cfg *config.Config, pipeline *agent.Pipeline, llm inference.Client, transcriber stt.Transcriber, speech tts.Provider, sessions *session.Manager, logger zerolog.Logger) *Server {
	s := &Server{
		cfg:         cfg,
		pipeline:    pipeline,
		llm:         llm,
		transcriber: transcriber,
		speech:      speech,
		sessions:    sessions,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		startTime: time.Now(),
		logger:    logger.With().Str("component", "server").Logger(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/chat", s.instrument("/chat", s.chatHandler))
	mux.HandleFunc("/speech", s.instrument("/speech", s.speechHandler))
	mux.HandleFunc("/ws", s.wsHandler)
	mux.HandleFunc("/health", s.instrument("/health", s.healthHandler))
	mux.HandleFunc("/api/v1/status", s.instrument("/api/v1/status", s.statusHandler))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/", s.instrument("/", s.indexHandler))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("HTTP server starting")
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the routing table for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// instrument wraps a handler with CORS headers and request metrics.
func (s *Server) instrument(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		metrics.RequestCount.WithLabelValues(r.Method, endpoint, strconv.Itoa(rec.status)).Inc()
		metrics.RequestDuration.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error().Err(err).Msg("Encoding response failed")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, ErrorResponse{Error: msg})
}

// chatResponse flattens a pipeline reply onto the wire shape.
func chatResponse(reply *agent.Reply, transcript string) ChatResponse {
	var audioURL *string
	if reply.AudioURL != "" {
		audioURL = &reply.AudioURL
	}
	return ChatResponse{
		ResponseText: reply.Text,
		EmotionData: EmotionData{
			Emotion:    reply.Emotion.Emotion,
			Confidence: reply.Emotion.Confidence,
			Intensity:  string(reply.Emotion.Intensity),
		},
		ToolUsed:   reply.Tool,
		SessionID:  reply.SessionID,
		AudioURL:   audioURL,
		Transcript: transcript,
	}
}

// chatHandler handles text turns.
func (s *Server) chatHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Text == "" {
		s.writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	reply := s.pipeline.Process(r.Context(), req.SessionID, req.Text)
	s.writeJSON(w, http.StatusOK, chatResponse(reply, ""))
}

// speechHandler handles audio turns: transcribe, then run the same pipeline
// as /chat. The transcript is echoed back so clients can display it.
func (s *Server) speechHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if s.transcriber == nil || !s.transcriber.IsAvailable() {
		s.writeError(w, http.StatusServiceUnavailable, "Speech recognition is not configured")
		return
	}

	if err := r.ParseMultipartForm(maxAudioUpload); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	file, header, err := r.FormFile("audio")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "audio file is required")
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(io.LimitReader(file, maxAudioUpload))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Failed to read audio")
		return
	}

	tr, err := s.transcriber.Transcribe(r.Context(), &stt.TranscribeRequest{
		Audio:    audio,
		Filename: header.Filename,
	})
	if err != nil {
		if errors.Is(err, stt.ErrAudioEmpty) {
			s.writeError(w, http.StatusBadRequest, "audio payload is empty")
			return
		}
		s.logger.Warn().Err(err).Msg("Transcription failed")
		s.writeError(w, http.StatusBadGateway, "Could not understand the audio")
		return
	}

	reply := s.pipeline.Process(r.Context(), r.FormValue("session_id"), tr.Text)
	s.writeJSON(w, http.StatusOK, chatResponse(reply, tr.Text))
}

// wsMessage is one frame on the WebSocket channel, both directions. Clients
// send {text, session_id}; the server answers with the full chat response.
type wsMessage struct {
	Text      string `json:"text"`
	SessionID string `json:"session_id,omitempty"`
}

// wsHandler runs a chat conversation over a WebSocket. The session sticks to
// the connection after the first turn.
func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	sessionID := r.URL.Query().Get("session_id")
	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug().Err(err).Msg("WebSocket read ended")
			}
			return
		}
		if msg.Text == "" {
			continue
		}
		if msg.SessionID != "" {
			sessionID = msg.SessionID
		}

		reply := s.pipeline.Process(r.Context(), sessionID, msg.Text)
		sessionID = reply.SessionID
		if err := conn.WriteJSON(chatResponse(reply, "")); err != nil {
			s.logger.Debug().Err(err).Msg("WebSocket write failed")
			return
		}
	}
}

// healthHandler handles health check requests.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Version:   "1.0.0",
		Uptime:    time.Since(s.startTime).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// statusHandler reports the availability of each upstream service.
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	reasoning := map[string]any{"configured": s.llm != nil, "healthy": false}
	if s.llm != nil {
		reasoning["healthy"] = s.llm.Health() == nil
		reasoning["model"] = s.cfg.Reasoning.Model
	}
	speechIn := map[string]any{"configured": s.transcriber != nil && s.transcriber.IsAvailable()}
	speechOut := map[string]any{"configured": s.speech != nil && s.speech.IsAvailable()}
	if s.speech != nil {
		speechOut["provider"] = s.speech.Name()
	}

	s.writeJSON(w, http.StatusOK, StatusResponse{
		Status:  "healthy",
		Version: "1.0.0",
		Uptime:  time.Since(s.startTime).String(),
		Services: map[string]any{
			"reasoning": reasoning,
			"stt":       speechIn,
			"tts":       speechOut,
		},
		Sessions:  s.sessions.Count(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// indexHandler identifies the service at the root path.
func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.writeError(w, http.StatusNotFound, "Not found")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"service": "cortex-concierge",
		"message": "E-commerce voice concierge. POST /chat to talk.",
	})
}
