// Package strategy turns engagement history into a versioned strategy
// config: which (platform, language, tone) combinations to lean into and
// which to steer away from.
package strategy

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rahulj/polypost/internal/analytics"
	"github.com/rahulj/polypost/internal/langroute"
	"github.com/rahulj/polypost/internal/targeting"
	"github.com/rahulj/polypost/internal/types"
)

const (
	// highMultiplier marks a combo high-performing above this share of the
	// overall mean; lowMultiplier marks it underperforming below.
	highMultiplier = 1.2
	lowMultiplier  = 0.8
)

// SignalStore persists strategy configs. Versions are immutable once saved.
type SignalStore interface {
	SaveConfig(ctx context.Context, cfg types.StrategyConfig) error
	LatestConfig(ctx context.Context) (types.StrategyConfig, bool, error)
}

// Engine computes strategy configs from engagement history.
type Engine struct {
	metrics analytics.MetricStore
	signals SignalStore
}

// NewEngine builds an Engine over the given stores.
func NewEngine(metrics analytics.MetricStore, signals SignalStore) *Engine {
	return &Engine{metrics: metrics, signals: signals}
}

type comboKey struct {
	platform string
	language string
	tone     types.Tone
}

type comboStats struct {
	key      comboKey
	rates    []float64
	meanRate float64
}

// Analyze classifies every observed combination in the trailing window and
// emits the next strategy config version. An empty window produces a valid,
// signal-free config rather than an error.
func (e *Engine) Analyze(ctx context.Context, now time.Time, windowDays int) (types.StrategyConfig, error) {
	if windowDays <= 0 {
		windowDays = 7
	}
	start := now.AddDate(0, 0, -windowDays)

	metrics, err := e.metrics.Query(ctx, start, now, analytics.Filter{})
	if err != nil {
		return types.StrategyConfig{}, fmt.Errorf("failed to query metrics: %w", err)
	}

	version := 1
	if latest, ok, err := e.signals.LatestConfig(ctx); err != nil {
		return types.StrategyConfig{}, fmt.Errorf("failed to load latest config: %w", err)
	} else if ok {
		version = latest.Version + 1
	}

	cfg := types.StrategyConfig{
		Version:     version,
		GeneratedAt: now,
	}

	combos := groupCombos(metrics)
	if len(combos) > 0 {
		overall := overallMean(metrics)
		cfg.Signals = classify(combos, overall, start, now, version)
	}

	if err := e.signals.SaveConfig(ctx, cfg); err != nil {
		return types.StrategyConfig{}, fmt.Errorf("failed to save config: %w", err)
	}
	return cfg, nil
}

func groupCombos(metrics []types.EngagementMetric) []comboStats {
	byKey := map[comboKey]*comboStats{}
	for _, m := range metrics {
		key := comboKey{
			platform: strings.ToLower(m.Platform),
			language: strings.ToLower(m.Language),
			tone:     m.Tone,
		}
		cs, ok := byKey[key]
		if !ok {
			cs = &comboStats{key: key}
			byKey[key] = cs
		}
		cs.rates = append(cs.rates, m.EngagementRate)
	}

	out := make([]comboStats, 0, len(byKey))
	for _, cs := range byKey {
		sum := 0.0
		for _, r := range cs.rates {
			sum += r
		}
		cs.meanRate = sum / float64(len(cs.rates))
		out = append(out, *cs)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].key, out[j].key
		if a.platform != b.platform {
			return a.platform < b.platform
		}
		if a.language != b.language {
			return a.language < b.language
		}
		return a.tone < b.tone
	})
	return out
}

func overallMean(metrics []types.EngagementMetric) float64 {
	if len(metrics) == 0 {
		return 0
	}
	sum := 0.0
	for _, m := range metrics {
		sum += m.EngagementRate
	}
	return sum / float64(len(metrics))
}

func classify(combos []comboStats, overall float64, start, end time.Time, version int) []types.FeedbackSignal {
	var highs []comboStats
	for _, cs := range combos {
		if overall > 0 && cs.meanRate >= overall*highMultiplier {
			highs = append(highs, cs)
		}
	}

	signals := make([]types.FeedbackSignal, 0, len(combos))
	for _, cs := range combos {
		sig := types.FeedbackSignal{
			ID:          uuid.New(),
			Version:     version,
			Platform:    cs.key.platform,
			Language:    cs.key.language,
			Tone:        cs.key.tone,
			MeanRate:    cs.meanRate,
			OverallMean: overall,
			SampleCount: len(cs.rates),
			WindowStart: start,
			WindowEnd:   end,
			CreatedAt:   time.Now().UTC(),
		}

		switch {
		case overall > 0 && cs.meanRate >= overall*highMultiplier:
			sig.Class = types.PerfHigh
			// Reinforce what works.
			sig.RecommendedTone = cs.key.tone
			sig.Note = "reinforce current tone"
		case overall > 0 && cs.meanRate <= overall*lowMultiplier:
			sig.Class = types.PerfUnder
			if best, ok := nearestHighPerformer(cs.key, highs); ok {
				sig.RecommendedTone = best.key.tone
				sig.Note = fmt.Sprintf("shift toward %s/%s performing at %.3f", best.key.platform, best.key.language, best.meanRate)
			}
		default:
			sig.Class = types.PerfNeutral
		}
		signals = append(signals, sig)
	}
	return signals
}

// nearestHighPerformer finds the most relevant high performer for an
// underperforming combo: same platform first, then same platform category,
// then same language family, then anything. Ties break on mean rate.
func nearestHighPerformer(key comboKey, highs []comboStats) (comboStats, bool) {
	if len(highs) == 0 {
		return comboStats{}, false
	}

	rank := func(h comboKey) int {
		switch {
		case h.platform == key.platform && h.language == key.language:
			return 0
		case h.platform == key.platform:
			return 1
		case sameCategory(h.platform, key.platform):
			return 2
		case langroute.FamilyOf(h.language) == langroute.FamilyOf(key.language):
			return 3
		default:
			return 4
		}
	}

	best := highs[0]
	bestRank := rank(best.key)
	for _, h := range highs[1:] {
		r := rank(h.key)
		if r < bestRank || (r == bestRank && h.meanRate > best.meanRate) {
			best, bestRank = h, r
		}
	}
	return best, true
}

func sameCategory(a, b string) bool {
	sa, okA := targeting.Spec(a)
	sb, okB := targeting.Spec(b)
	return okA && okB && sa.Category == sb.Category
}
