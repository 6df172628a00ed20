package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rahulj/polypost/internal/analytics"
	"github.com/rahulj/polypost/internal/langroute"
	"github.com/rahulj/polypost/internal/sentiment"
	"github.com/rahulj/polypost/internal/types"
)

func TestPrintRouteDecision(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRouteDecision(langroute.Decision{
		Language:   "hi",
		Family:     types.FamilyIndic,
		Confidence: 0.92,
	})
	output := buf.String()

	assert.Contains(t, output, "LANGUAGE ROUTE")
	assert.Contains(t, output, "hi")
	assert.Contains(t, output, "indic")
	assert.Contains(t, output, "0.92")
	assert.NotContains(t, output, "Low confidence")
}

func TestPrintRouteDecision_LowConfidence(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRouteDecision(langroute.Decision{
		Language:      "en",
		Family:        types.FamilyLatin,
		Confidence:    0.31,
		LowConfidence: true,
	})

	assert.Contains(t, buf.String(), "Low confidence")
}

func TestPrintTunedContent(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintTunedContent(sentiment.Result{
		Text:             "Rise and shine! Every step counts.",
		Tone:             types.ToneUplifting,
		Intensity:        types.IntensityModerate,
		Weight:           0.6,
		AnchorsPreserved: true,
	})
	output := buf.String()

	assert.Contains(t, output, "TUNED CONTENT")
	assert.Contains(t, output, "uplifting")
	assert.Contains(t, output, "moderate")
	assert.Contains(t, output, "anchors preserved")
}

func TestPrintVariants(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintVariants([]types.ContentVariant{
		{
			Platform: "twitter",
			Language: "hi",
			VoiceTag: "hi_in_warm",
			Text:     "आगे बढ़ते रहो",
		},
		{
			Platform:  "spotify",
			Language:  "en",
			VoiceTag:  "en_us_neutral",
			Text:      "Keep moving forward",
			Truncated: true,
			Audio:     &types.AudioSegments{TotalSeconds: 12.4},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "CONTENT VARIANTS")
	assert.Contains(t, output, "twitter/hi")
	assert.Contains(t, output, "hi_in_warm")
	assert.Contains(t, output, "truncated")
	assert.Contains(t, output, "audio 12.4s")
}

func TestPrintVariants_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintVariants(nil)

	assert.Empty(t, buf.String())
}

func TestPrintPublishSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintPublishSummary([]types.PublishRecord{
		{Platform: "twitter", Language: "hi", Status: types.StatusPublished},
		{Platform: "linkedin", Language: "en", Status: types.StatusAborted, Reason: "kill switch active"},
	})
	output := buf.String()

	assert.Contains(t, output, "PUBLISH SUMMARY")
	assert.Contains(t, output, "Published: 1")
	assert.Contains(t, output, "Aborted:   1")
	assert.Contains(t, output, "kill switch active")
}

func TestPrintStrategyConfig(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintStrategyConfig(types.StrategyConfig{
		Version: 3,
		Signals: []types.FeedbackSignal{
			{
				Platform: "twitter", Language: "hi", Tone: types.ToneUplifting,
				Class: types.PerfHigh, MeanRate: 0.20, OverallMean: 0.10, SampleCount: 4,
				RecommendedTone: types.ToneUplifting,
			},
			{
				Platform: "linkedin", Language: "de", Tone: types.ToneProfessional,
				Class: types.PerfUnder, MeanRate: 0.01, OverallMean: 0.10, SampleCount: 2,
			},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "STRATEGY SIGNALS")
	assert.Contains(t, output, "Version 3")
	assert.Contains(t, output, "twitter/hi/uplifting")
	assert.Contains(t, output, "recommend uplifting")
}

func TestPrintStrategyConfig_NoSignals(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintStrategyConfig(types.StrategyConfig{Version: 1})

	assert.Contains(t, buf.String(), "NO SIGNALS YET")
}

func TestPrintAggregate(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	p.PrintAggregate(analytics.Summary{
		WindowStart: now.AddDate(0, 0, -7),
		WindowEnd:   now,
		Rows: []analytics.AggregateRow{
			{Platform: "twitter", Language: "hi", Count: 3, MeanRate: 0.0912, MedianRate: 0.0900, TotalViews: 2400},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "ENGAGEMENT SUMMARY")
	assert.Contains(t, output, "twitter/hi")
	assert.Contains(t, output, "0.0912")
	assert.Contains(t, output, "2400")
}

func TestPrintAggregate_NoData(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAggregate(analytics.Summary{NoData: true})

	assert.Contains(t, buf.String(), "No data")
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintTunedContent(sentiment.Result{
		Text:      strings.Repeat("a very long line of tuned content ", 6),
		Tone:      types.ToneNeutral,
		Intensity: types.IntensitySubtle,
	})
	output := buf.String()

	// Should contain box characters
	assert.True(t, strings.Contains(output, "┌"))
	assert.True(t, strings.Contains(output, "└"))
	assert.True(t, strings.Contains(output, "│"))
}
