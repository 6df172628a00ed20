package types

import (
	"time"

	"github.com/google/uuid"
)

// PublishRecord is the durable outcome of one publish attempt.
// Platform, language and tone are denormalized onto the record so the
// analytics collector can aggregate without joining back to variants.
type PublishRecord struct {
	ID          uuid.UUID     `json:"id"`
	RunID       uuid.UUID     `json:"run_id"`
	VariantKey  string        `json:"variant_key"`
	Platform    string        `json:"platform"`
	Language    string        `json:"language"`
	Tone        Tone          `json:"tone"`
	Status      PublishStatus `json:"status"`
	Reason      string        `json:"reason,omitempty"`
	TextLength  int           `json:"text_length"`
	PublishedAt *time.Time    `json:"published_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// EngagementMetric is one synthesized engagement snapshot for a published record.
type EngagementMetric struct {
	ID             uuid.UUID `json:"id"`
	PublishID      uuid.UUID `json:"publish_id"`
	Platform       string    `json:"platform"`
	Language       string    `json:"language"`
	Tone           Tone      `json:"tone"`
	Views          int       `json:"views"`
	Likes          int       `json:"likes"`
	Shares         int       `json:"shares"`
	Comments       int       `json:"comments"`
	EngagementRate float64   `json:"engagement_rate"`
	WindowStart    time.Time `json:"window_start"`
	WindowEnd      time.Time `json:"window_end"`
	CreatedAt      time.Time `json:"created_at"`
}

// EngagementRate computes (likes+shares+comments)/views with the divisor
// clamped to at least 1, so zero-view records score 0 instead of dividing by zero.
func EngagementRate(likes, shares, comments, views int) float64 {
	divisor := views
	if divisor < 1 {
		divisor = 1
	}
	return float64(likes+shares+comments) / float64(divisor)
}

// FeedbackSignal is one strategy verdict for a (platform, language, tone) combination.
type FeedbackSignal struct {
	ID               uuid.UUID        `json:"id"`
	Version          int              `json:"version"`
	Platform         string           `json:"platform"`
	Language         string           `json:"language"`
	Tone             Tone             `json:"tone"`
	Class            PerformanceClass `json:"class"`
	MeanRate         float64          `json:"mean_rate"`
	OverallMean      float64          `json:"overall_mean"`
	SampleCount      int              `json:"sample_count"`
	RecommendedTone  Tone             `json:"recommended_tone,omitempty"`
	Note             string           `json:"note,omitempty"`
	WindowStart      time.Time        `json:"window_start"`
	WindowEnd        time.Time        `json:"window_end"`
	CreatedAt        time.Time        `json:"created_at"`
}

// StrategyConfig is a versioned snapshot of the strategy engine's output.
// Pipeline runs take a snapshot at start; a new version never mutates an
// in-flight run.
type StrategyConfig struct {
	Version     int              `json:"version"`
	GeneratedAt time.Time        `json:"generated_at"`
	Signals     []FeedbackSignal `json:"signals"`
}

// ToneFor returns the recommended tone for a platform/language pair, or
// fallback when no signal recommends one.
func (s *StrategyConfig) ToneFor(platform, language string, fallback Tone) Tone {
	if s == nil {
		return fallback
	}
	for _, sig := range s.Signals {
		if sig.Platform == platform && sig.Language == language && sig.RecommendedTone != "" {
			return sig.RecommendedTone
		}
	}
	return fallback
}
