package tts

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cortexhub/cortex-concierge/internal/emotion"
)

func TestMapVoiceMediumReturnsBase(t *testing.T) {
	for label, base := range baseSettings {
		got := MapVoice(emotion.Result{Emotion: label, Intensity: emotion.IntensityMedium})
		assert.Equal(t, base, got, "medium intensity must not adjust %s", label)
	}
}

func TestMapVoiceHighIntensity(t *testing.T) {
	got := MapVoice(emotion.Result{Emotion: "joy", Intensity: emotion.IntensityHigh})
	assert.InDelta(t, 1.15*1.1, got.Rate, 1e-9)
	assert.InDelta(t, 1.08*1.05, got.Pitch, 1e-9)
}

func TestMapVoiceHighIntensityCaps(t *testing.T) {
	// excitement base rate 1.25 * 1.1 = 1.375 stays under the cap,
	// but pitch 1.12 * 1.05 = 1.176 also fits; force the caps with surprise.
	got := MapVoice(emotion.Result{Emotion: "surprise", Intensity: emotion.IntensityHigh})
	assert.InDelta(t, 1.2*1.1, got.Rate, 1e-9)
	assert.Equal(t, 1.2, got.Pitch, "pitch capped at 1.2")
}

func TestMapVoiceLowIntensityFloors(t *testing.T) {
	got := MapVoice(emotion.Result{Emotion: "sadness", Intensity: emotion.IntensityLow})
	assert.InDelta(t, 0.8*0.95, got.Rate, 1e-9)
	assert.InDelta(t, 0.92*0.98, got.Pitch, 1e-9)

	deep := MapVoice(emotion.Result{Emotion: "sadness", Intensity: emotion.IntensityLow})
	assert.GreaterOrEqual(t, deep.Rate, 0.7)
	assert.GreaterOrEqual(t, deep.Pitch, 0.85)
}

func TestMapVoiceUnknownEmotionFallsBackToNeutral(t *testing.T) {
	got := MapVoice(emotion.Result{Emotion: "melancholy", Intensity: emotion.IntensityMedium})
	assert.Equal(t, Settings{Rate: 1.0, Pitch: 1.0}, got)
}
