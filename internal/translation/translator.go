// Package translation renders tuned content into each requested target
// language and applies per-recipient personalization. The supported language
// set is closed; unknown targets fail before any translation work starts.
package translation

import (
	"context"

	"github.com/rahulj/polypost/internal/types"
)

// Translation is one translator response.
type Translation struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Notes      string  `json:"notes,omitempty"`
}

// Translator renders text into a single target language. Implementations
// must be deterministic for a fixed version: the same (text, language, tone)
// yields the same translation.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string, tone types.Tone) (Translation, error)
}

// Result is the service-level outcome for one target language.
type Result struct {
	Language     string  `json:"language"`
	Text         string  `json:"text"`
	Confidence   float64 `json:"confidence"`
	Degraded     bool    `json:"degraded,omitempty"`
	Personalized bool    `json:"personalized,omitempty"`
}
