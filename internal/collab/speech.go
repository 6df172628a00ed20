package collab

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// speechWordsPerSecond is the speaking-rate estimate used for duration math.
const speechWordsPerSecond = 2.5

// SpeechResult describes one synthesized audio segment.
type SpeechResult struct {
	AudioRef string  `json:"audio_ref"`
	Seconds  float64 `json:"seconds"`
	VoiceTag string  `json:"voice_tag"`
}

// SpeechSynthesizer renders text to speech. Implementations may be remote
// TTS services; the pipeline only depends on the duration and an opaque ref.
type SpeechSynthesizer interface {
	Synthesize(text, voiceTag string) SpeechResult
}

// SimulatedSynthesizer estimates duration from word count and mints an
// opaque reference without producing audio.
type SimulatedSynthesizer struct{}

// Synthesize estimates speech duration at 2.5 words per second.
func (SimulatedSynthesizer) Synthesize(text, voiceTag string) SpeechResult {
	words := len(strings.Fields(text))
	seconds := float64(words) / speechWordsPerSecond
	return SpeechResult{
		AudioRef: fmt.Sprintf("tts://%s/%s", voiceTag, uuid.NewString()),
		Seconds:  seconds,
		VoiceTag: voiceTag,
	}
}

// EstimateSeconds returns the speaking duration estimate for text without
// synthesizing anything.
func EstimateSeconds(text string) float64 {
	return float64(len(strings.Fields(text))) / speechWordsPerSecond
}
