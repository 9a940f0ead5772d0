package tts

import "github.com/cortexhub/cortex-concierge/internal/emotion"

// Settings holds the prosody parameters handed to the synthesis provider.
// Both values are multipliers with 1.0 meaning the voice's natural delivery.
type Settings struct {
	Rate  float64 `json:"rate"`
	Pitch float64 `json:"pitch"`
}

// baseSettings maps each emotion label to its base prosody.
var baseSettings = map[string]Settings{
	"joy":         {Rate: 1.15, Pitch: 1.08},
	"excitement":  {Rate: 1.25, Pitch: 1.12},
	"love":        {Rate: 1.05, Pitch: 1.06},
	"gratitude":   {Rate: 1.05, Pitch: 1.04},
	"sadness":     {Rate: 0.8, Pitch: 0.92},
	"anger":       {Rate: 0.9, Pitch: 0.98},
	"frustration": {Rate: 0.92, Pitch: 0.97},
	"fear":        {Rate: 0.85, Pitch: 1.05},
	"anxiety":     {Rate: 0.9, Pitch: 1.04},
	"surprise":    {Rate: 1.2, Pitch: 1.15},
	"confusion":   {Rate: 0.95, Pitch: 1.02},
	"calm":        {Rate: 0.95, Pitch: 1.0},
	"hopeful":     {Rate: 1.1, Pitch: 1.05},
	"neutral":     {Rate: 1.0, Pitch: 1.0},
}

// MapVoice derives prosody from the detected emotion and intensity. Unknown
// emotion labels fall back to the neutral base; medium intensity applies no
// adjustment.
func MapVoice(res emotion.Result) Settings {
	settings, ok := baseSettings[res.Emotion]
	if !ok {
		settings = baseSettings["neutral"]
	}

	switch res.Intensity {
	case emotion.IntensityHigh:
		settings.Rate = min(settings.Rate*1.1, 1.4)
		settings.Pitch = min(settings.Pitch*1.05, 1.2)
	case emotion.IntensityLow:
		settings.Rate = max(settings.Rate*0.95, 0.7)
		settings.Pitch = max(settings.Pitch*0.98, 0.85)
	}
	return settings
}
