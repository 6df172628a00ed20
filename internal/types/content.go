package types

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ContentItem is the raw unit of content entering the pipeline.
type ContentItem struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	Language  string    `json:"language,omitempty"` // empty means "detect"
	Context   string    `json:"context,omitempty"`  // spiritual, motivational, educational, cultural
	CreatedAt time.Time `json:"created_at"`
}

// NewContentItem builds a ContentItem with a fresh ID.
func NewContentItem(text, context string) ContentItem {
	return ContentItem{
		ID:        uuid.New(),
		Text:      text,
		Context:   context,
		CreatedAt: time.Now().UTC(),
	}
}

// AudioSegments carries the audio-first wrapping for platforms that lead with audio.
type AudioSegments struct {
	Intro        string  `json:"intro"`
	Outro        string  `json:"outro"`
	BodySeconds  float64 `json:"body_seconds"`
	TotalSeconds float64 `json:"total_seconds"`
	AudioRef     string  `json:"audio_ref,omitempty"`
}

// ContentVariant is one platform-and-language-ready rendition of a content item.
type ContentVariant struct {
	ID                    uuid.UUID      `json:"id"`
	ContentID             uuid.UUID      `json:"content_id"`
	Platform              string         `json:"platform"`
	Language              string         `json:"language"`
	Tone                  Tone           `json:"tone"`
	Text                  string         `json:"text"`
	Hashtags              []string       `json:"hashtags,omitempty"`
	VoiceTag              string         `json:"voice_tag,omitempty"`
	Truncated             bool           `json:"truncated,omitempty"`
	TranslationDegraded   bool           `json:"translation_degraded,omitempty"`
	LowConfidenceRoute    bool           `json:"low_confidence_route,omitempty"`
	TranslationConfidence float64        `json:"translation_confidence,omitempty"`
	Audio                 *AudioSegments `json:"audio,omitempty"`
	CreatedAt             time.Time      `json:"created_at"`
}

// Fingerprint returns a stable key identifying this variant's publishable
// identity. Two variants with the same text, platform, language and tone
// share a fingerprint, which is what makes publishing idempotent.
func (v *ContentVariant) Fingerprint() string {
	h := sha256.New()
	h.Write([]byte(v.Text))
	h.Write([]byte{0})
	h.Write([]byte(strings.ToLower(v.Platform)))
	h.Write([]byte{0})
	h.Write([]byte(strings.ToLower(v.Language)))
	h.Write([]byte{0})
	h.Write([]byte(v.Tone))
	return hex.EncodeToString(h.Sum(nil))
}

// UserProfile carries the per-recipient preferences the personalization pass honors.
type UserProfile struct {
	ID                 string   `json:"id"`
	PreferredLanguages []string `json:"preferred_languages,omitempty"`
	Formality          string   `json:"formality,omitempty"` // "formal" or "casual"
	AvoidEmojis        bool     `json:"avoid_emojis,omitempty"`
}
