// Package emotion classifies the emotional tone of user utterances. The
// intensity grade is computed locally; the emotion label comes from the
// reasoning service and degrades to neutral when that is unavailable.
package emotion

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cortexhub/cortex-concierge/internal/inference"
)

// Intensity is a coarse three-level strength grade.
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// Result is the transient per-request classification.
type Result struct {
	Emotion    string    `json:"emotion"`
	Confidence float64   `json:"confidence"`
	Intensity  Intensity `json:"intensity"`
}

// Vocabulary is the closed set of emotion labels the classifier may emit.
var Vocabulary = []string{
	"joy", "excitement", "love", "gratitude",
	"sadness", "anger", "frustration", "fear", "anxiety",
	"surprise", "confusion", "calm", "hopeful", "neutral",
}

var vocabularySet = func() map[string]bool {
	m := make(map[string]bool, len(Vocabulary))
	for _, e := range Vocabulary {
		m[e] = true
	}
	return m
}()

var (
	highIntensifiers   = []string{"very", "extremely", "incredibly", "absolutely", "totally", "completely", "utterly", "so", "really"}
	mediumIntensifiers = []string{"quite", "fairly", "somewhat", "rather", "pretty", "kind of"}
	lowIntensifiers    = []string{"a bit", "a little", "slightly", "somewhat"}
)

// DetectIntensity grades the strength of an utterance. The checks run in a
// fixed priority order; the first hit wins.
func DetectIntensity(text string) Intensity {
	lower := strings.ToLower(text)

	if containsAny(lower, highIntensifiers) {
		return IntensityHigh
	}
	for _, word := range strings.Fields(text) {
		if len(word) > 2 && isShouted(word) {
			return IntensityHigh
		}
	}
	switch exclamations := strings.Count(text, "!"); {
	case exclamations >= 2:
		return IntensityHigh
	case exclamations == 1:
		return IntensityMedium
	}
	if containsAny(lower, mediumIntensifiers) {
		return IntensityMedium
	}
	if containsAny(lower, lowIntensifiers) {
		return IntensityLow
	}
	return IntensityMedium
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}

// isShouted reports whether a token is fully upper-cased. Tokens without
// letters (numbers, punctuation) do not count.
func isShouted(word string) bool {
	return strings.ToUpper(word) == word && strings.ToLower(word) != word
}

// Classifier resolves the primary emotion of an utterance.
type Classifier struct {
	llm    inference.Client
	logger zerolog.Logger
}

// NewClassifier creates a classifier. A nil client disables the LLM pass;
// Classify then always resolves to neutral with the local intensity attached.
func NewClassifier(llm inference.Client, logger zerolog.Logger) *Classifier {
	return &Classifier{
		llm:    llm,
		logger: logger.With().Str("component", "emotion").Logger(),
	}
}

const classifyPromptTemplate = `Analyze the emotional tone of the user's text.
Choose the primary emotion from this list only: %VOCAB%.
Respond with ONLY a single JSON object: {"primary": "<emotion>", "confidence": <0.0-1.0>}`

// llmVerdict is the structured response demanded from the reasoning service.
type llmVerdict struct {
	Primary    string  `json:"primary"`
	Confidence float64 `json:"confidence"`
}

// Classify is total: every failure path degrades to {neutral, 0, intensity}.
func (c *Classifier) Classify(ctx context.Context, text string) Result {
	result := Result{
		Emotion:   "neutral",
		Intensity: DetectIntensity(text),
	}
	if c.llm == nil {
		return result
	}

	system := strings.Replace(classifyPromptTemplate, "%VOCAB%", strings.Join(Vocabulary, ", "), 1)
	resp, err := c.llm.Complete(ctx, &inference.Request{
		System:      system,
		User:        text,
		Temperature: 0.3,
		MaxTokens:   50,
		JSONMode:    true,
	})
	if err != nil {
		c.logger.Warn().Err(err).Msg("Emotion detection degraded to neutral")
		return result
	}

	var verdict llmVerdict
	if err := json.Unmarshal([]byte(resp.Content), &verdict); err != nil {
		c.logger.Warn().Str("content", resp.Content).Msg("Unparseable emotion verdict")
		return result
	}

	label := strings.ToLower(strings.TrimSpace(verdict.Primary))
	if !vocabularySet[label] {
		c.logger.Warn().Str("label", label).Msg("Emotion outside vocabulary")
		return result
	}

	result.Emotion = label
	result.Confidence = clamp01(verdict.Confidence)
	return result
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
