package agent

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cortexhub/cortex-concierge/internal/catalog"
	"github.com/cortexhub/cortex-concierge/internal/emotion"
	"github.com/cortexhub/cortex-concierge/internal/inference"
	"github.com/cortexhub/cortex-concierge/internal/metrics"
	"github.com/cortexhub/cortex-concierge/internal/session"
	"github.com/cortexhub/cortex-concierge/internal/tools"
	"github.com/cortexhub/cortex-concierge/internal/tts"
)

// Reply is the assembled answer for one utterance.
type Reply struct {
	Text      string
	Emotion   emotion.Result
	Tool      string
	SessionID string
	AudioURL  string
	Elapsed   time.Duration
}

// Pipeline wires the stages together: emotion and tool selection run
// concurrently, then synthesis, then optional speech.
type Pipeline struct {
	dispatcher *Dispatcher
	responder  *Responder
	classifier *emotion.Classifier
	sessions   *session.Manager
	speech     tts.Provider
	logger     zerolog.Logger
}

// NewPipeline assembles the pipeline. The reasoning client and the speech
// provider may each be nil; the pipeline degrades instead of failing.
func NewPipeline(store *catalog.Store, sessions *session.Manager, llm inference.Client, speech tts.Provider, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		dispatcher: NewDispatcher(tools.NewRegistry(), store, llm, logger),
		responder:  NewResponder(llm, logger),
		classifier: emotion.NewClassifier(llm, logger),
		sessions:   sessions,
		speech:     speech,
		logger:     logger.With().Str("component", "pipeline").Logger(),
	}
}

// Process handles one utterance end to end. It always returns a reply with
// non-empty text; failures along the way degrade the reply rather than
// aborting it.
func (p *Pipeline) Process(ctx context.Context, sessionID, text string) *Reply {
	start := time.Now()

	sess := p.sessions.Get(sessionID)
	sess.Touch()
	metrics.ActiveSessions.Set(float64(p.sessions.Count()))

	// Emotion and tool selection are independent reads of the utterance.
	var (
		wg      sync.WaitGroup
		emo     emotion.Result
		outcome Outcome
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		emo = p.classifier.Classify(ctx, text)
	}()
	go func() {
		defer wg.Done()
		reasoningStart := time.Now()
		outcome = p.dispatcher.Run(ctx, text, sess)
		metrics.ReasoningLatency.Observe(time.Since(reasoningStart).Seconds())
	}()
	wg.Wait()

	replyText := p.responder.Synthesize(ctx, text, emo, outcome)
	audioURL := p.synthesizeSpeech(ctx, replyText, emo)

	reply := &Reply{
		Text:      replyText,
		Emotion:   emo,
		Tool:      outcome.Tool,
		SessionID: sess.ID,
		AudioURL:  audioURL,
		Elapsed:   time.Since(start),
	}
	p.logger.Info().
		Str("sessionId", sess.ID).
		Str("tool", reply.Tool).
		Str("emotion", emo.Emotion).
		Dur("elapsed", reply.Elapsed).
		Msg("Request processed")
	return reply
}

// synthesizeSpeech voices the reply when a provider is configured. The URL
// is empty when speech is unavailable; the text reply stands on its own.
func (p *Pipeline) synthesizeSpeech(ctx context.Context, text string, emo emotion.Result) string {
	if p.speech == nil || !p.speech.IsAvailable() {
		return ""
	}

	voice := tts.MapVoice(emo)
	start := time.Now()
	resp, err := p.speech.Synthesize(ctx, &tts.SynthesizeRequest{
		Text:  text,
		Rate:  voice.Rate,
		Pitch: voice.Pitch,
	})
	metrics.SynthesisLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		p.logger.Warn().Err(err).Msg("Speech synthesis failed, replying with text only")
		metrics.DegradedResponses.WithLabelValues("tts").Inc()
		return ""
	}
	return resp.AudioURL
}
