// Package analytics synthesizes engagement metrics for published variants
// and aggregates them into the windows the strategy engine consumes.
package analytics

import (
	"hash/fnv"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rahulj/polypost/internal/types"
)

// platformPattern shapes the synthetic engagement curve per platform.
type platformPattern struct {
	baseViews   int
	likeRate    float64
	shareRate   float64
	commentRate float64
}

var platformPatterns = map[string]platformPattern{
	"twitter":   {baseViews: 800, likeRate: 0.040, shareRate: 0.015, commentRate: 0.008},
	"instagram": {baseViews: 1200, likeRate: 0.070, shareRate: 0.010, commentRate: 0.012},
	"linkedin":  {baseViews: 400, likeRate: 0.030, shareRate: 0.008, commentRate: 0.020},
	"spotify":   {baseViews: 300, likeRate: 0.050, shareRate: 0.005, commentRate: 0.004},
}

var defaultPattern = platformPattern{baseViews: 500, likeRate: 0.03, shareRate: 0.01, commentRate: 0.01}

// Regional reach multipliers. Unlisted languages use 0.9.
var languageMultipliers = map[string]float64{
	"en": 1.0, "hi": 1.2, "es": 1.1, "pt": 1.05, "bn": 1.1,
	"ta": 1.05, "te": 1.05, "ja": 0.95, "de": 0.95, "sa": 0.8,
}

// Tones that travel well get a small boost.
var toneBoosts = map[types.Tone]float64{
	types.ToneUplifting:     1.10,
	types.ToneMotivational:  1.15,
	types.ToneInspirational: 1.12,
	types.ToneDevotional:    1.08,
	types.ToneEnergetic:     1.05,
	types.ToneNeutral:       1.00,
}

// Simulate synthesizes one engagement snapshot for a published record. The
// base numbers are seeded by (platform, language, tone, text length) so
// repeated runs stay statistically similar, then a small unseeded jitter
// keeps them from being bit-identical.
func Simulate(rec types.PublishRecord, windowStart, windowEnd time.Time) types.EngagementMetric {
	pattern, ok := platformPatterns[strings.ToLower(rec.Platform)]
	if !ok {
		pattern = defaultPattern
	}
	langMult, ok := languageMultipliers[strings.ToLower(rec.Language)]
	if !ok {
		langMult = 0.9
	}
	toneBoost, ok := toneBoosts[rec.Tone]
	if !ok {
		toneBoost = 0.95
	}

	seeded := rand.New(rand.NewSource(seedFor(rec)))

	views := int(float64(pattern.baseViews) * langMult * (0.8 + seeded.Float64()*0.4) * jitter())
	likes := int(float64(views) * pattern.likeRate * toneBoost * (0.8 + seeded.Float64()*0.4))
	shares := int(float64(views) * pattern.shareRate * toneBoost * (0.8 + seeded.Float64()*0.4))
	comments := int(float64(views) * pattern.commentRate * (0.8 + seeded.Float64()*0.4))

	return types.EngagementMetric{
		ID:             uuid.New(),
		PublishID:      rec.ID,
		Platform:       rec.Platform,
		Language:       rec.Language,
		Tone:           rec.Tone,
		Views:          views,
		Likes:          likes,
		Shares:         shares,
		Comments:       comments,
		EngagementRate: types.EngagementRate(likes, shares, comments, views),
		WindowStart:    windowStart,
		WindowEnd:      windowEnd,
		CreatedAt:      time.Now().UTC(),
	}
}

func seedFor(rec types.PublishRecord) int64 {
	h := fnv.New64a()
	h.Write([]byte(strings.ToLower(rec.Platform)))
	h.Write([]byte{0})
	h.Write([]byte(strings.ToLower(rec.Language)))
	h.Write([]byte{0})
	h.Write([]byte(rec.Tone))
	h.Write([]byte{0})
	h.Write([]byte{byte(rec.TextLength), byte(rec.TextLength >> 8)})
	return int64(h.Sum64())
}

// jitter returns a multiplier in [0.9, 1.1) from the global RNG.
func jitter() float64 {
	return 0.9 + rand.Float64()*0.2
}
