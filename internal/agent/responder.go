package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cortexhub/cortex-concierge/internal/emotion"
	"github.com/cortexhub/cortex-concierge/internal/inference"
	"github.com/cortexhub/cortex-concierge/internal/metrics"
)

// apologyMessage is the fixed fallback when synthesis itself fails. A reply
// always goes out, even when every reasoning call in the request failed.
const apologyMessage = "I'm having a little trouble right now. Could you say that again?"

const synthesisPrompt = `You are "Natalie", a friendly and empathetic voice assistant for an e-commerce store.
The user said: "%s"
Their detected emotion is %s (intensity: %s).
The "%s" tool was used and returned: %s
Compose a short, natural, conversational reply that acknowledges the user's emotional state
and presents the result. Never mention tool names or read out raw structured data.
Speak as if talking out loud. Do not use markdown, lists or emoji.`

// Responder turns a tool outcome into conversational text.
type Responder struct {
	llm    inference.Client
	logger zerolog.Logger
}

// NewResponder creates a responder. A nil client means every reply is the
// raw rendering of the tool result.
func NewResponder(llm inference.Client, logger zerolog.Logger) *Responder {
	return &Responder{
		llm:    llm,
		logger: logger.With().Str("component", "responder").Logger(),
	}
}

// Synthesize produces the reply text for one request. It never returns an
// empty string and never fails: without a client the raw tool result goes
// out as-is, and a failed synthesis call yields a fixed apology.
func (r *Responder) Synthesize(ctx context.Context, utterance string, emo emotion.Result, outcome Outcome) string {
	raw := renderResult(outcome.Result)

	if r.llm == nil {
		metrics.DegradedResponses.WithLabelValues("synthesis").Inc()
		return raw
	}

	resp, err := r.llm.Complete(ctx, &inference.Request{
		System:      fmt.Sprintf(synthesisPrompt, utterance, emo.Emotion, emo.Intensity, outcome.Tool, raw),
		Temperature: 0.7,
		MaxTokens:   150,
	})
	if err != nil {
		r.logger.Warn().Err(err).Msg("Synthesis failed, sending apology")
		metrics.DegradedResponses.WithLabelValues("synthesis").Inc()
		return apologyMessage
	}
	if resp.Content == "" {
		metrics.DegradedResponses.WithLabelValues("synthesis").Inc()
		return raw
	}
	return resp.Content
}

// renderResult flattens a tool result into text a voice could read. The
// output is never empty.
func renderResult(result any) string {
	switch v := result.(type) {
	case nil:
		return apologyMessage
	case string:
		if v == "" {
			return apologyMessage
		}
		return v
	case errorResult:
		return v.Error
	case noticeResult:
		return v.Message
	default:
		b, err := json.Marshal(v)
		if err != nil || len(b) == 0 || string(b) == "null" {
			return apologyMessage
		}
		return string(b)
	}
}
