// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/rahulj/polypost/internal/analytics"
	"github.com/rahulj/polypost/internal/langroute"
	"github.com/rahulj/polypost/internal/sentiment"
	"github.com/rahulj/polypost/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRouteDecision outputs a human-readable summary of the routing verdict.
func (p *Printer) PrintRouteDecision(d langroute.Decision) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Language:   %s\n", d.Language))
	sb.WriteString(fmt.Sprintf("Family:     %s\n", d.Family))
	sb.WriteString(fmt.Sprintf("Confidence: %.2f", d.Confidence))
	if d.LowConfidence {
		sb.WriteString("\n⚠ Low confidence; fell back to the default language")
	}

	p.printBox("LANGUAGE ROUTE", sb.String())
}

// PrintTunedContent outputs the sentiment tuner's result.
func (p *Printer) PrintTunedContent(r sentiment.Result) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Tone:      %s\n", r.Tone))
	sb.WriteString(fmt.Sprintf("Intensity: %s (weight %.1f)\n", r.Intensity, r.Weight))
	sb.WriteString("\n")

	text := r.Text
	if len(text) > 100 {
		text = text[:97] + "..."
	}
	sb.WriteString(text)
	sb.WriteString("\n")

	if r.AnchorsPreserved {
		sb.WriteString("\n✓ all meaning anchors preserved")
	} else {
		sb.WriteString("\n⚠ some meaning anchors lost in rewrite")
	}

	p.printBox("TUNED CONTENT", sb.String())
}

// PrintVariants outputs the first few platform/language variants.
func (p *Printer) PrintVariants(variants []types.ContentVariant) {
	if len(variants) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Built %d variants:\n\n", len(variants)))

	count := min(len(variants), maxItemsToShow)
	for i := 0; i < count; i++ {
		v := variants[i]
		sb.WriteString(fmt.Sprintf("%s/%s (%s)\n", v.Platform, v.Language, v.VoiceTag))

		text := v.Text
		if len(text) > 50 {
			text = text[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("  %s\n", text))

		flags := []string{}
		if v.Truncated {
			flags = append(flags, "truncated")
		}
		if v.TranslationDegraded {
			flags = append(flags, "degraded")
		}
		if v.LowConfidenceRoute {
			flags = append(flags, "low-confidence")
		}
		if v.Audio != nil {
			flags = append(flags, fmt.Sprintf("audio %.1fs", v.Audio.TotalSeconds))
		}
		if len(flags) > 0 {
			sb.WriteString(fmt.Sprintf("  [%s]\n", strings.Join(flags, " ")))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(variants) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more variants", len(variants)-maxItemsToShow))
	}

	p.printBox("CONTENT VARIANTS", sb.String())
}

// PrintPublishSummary outputs publish outcomes grouped by status.
func (p *Printer) PrintPublishSummary(records []types.PublishRecord) {
	if len(records) == 0 {
		return
	}

	published, aborted := 0, 0
	for _, r := range records {
		switch r.Status {
		case types.StatusPublished:
			published++
		case types.StatusAborted:
			aborted++
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Published: %d\n", published))
	sb.WriteString(fmt.Sprintf("Aborted:   %d\n", aborted))
	sb.WriteString("\n")

	count := min(len(records), maxItemsToShow)
	for i := 0; i < count; i++ {
		r := records[i]
		sb.WriteString(fmt.Sprintf("• %s/%s → %s", r.Platform, r.Language, r.Status))
		if r.Reason != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", r.Reason))
		}
		sb.WriteString("\n")
	}
	if len(records) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(records)-maxItemsToShow))
	}

	p.printBox("PUBLISH SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStrategyConfig outputs the signals of a strategy config version.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintStrategyConfig(cfg types.StrategyConfig) {
	if len(cfg.Signals) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, fmt.Sprintf("STRATEGY v%d: NO SIGNALS YET", cfg.Version))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Version %d, %d signals:\n\n", cfg.Version, len(cfg.Signals)))

	count := min(len(cfg.Signals), maxItemsToShow)
	for i := 0; i < count; i++ {
		sig := cfg.Signals[i]
		marker := "·"
		switch sig.Class {
		case types.PerfHigh:
			marker = "▲"
		case types.PerfUnder:
			marker = "▼"
		}
		sb.WriteString(fmt.Sprintf("%s %s/%s/%s\n", marker, sig.Platform, sig.Language, sig.Tone))
		sb.WriteString(fmt.Sprintf("  mean %.3f vs overall %.3f (n=%d)\n", sig.MeanRate, sig.OverallMean, sig.SampleCount))
		if sig.RecommendedTone != "" {
			sb.WriteString(fmt.Sprintf("  → recommend %s\n", sig.RecommendedTone))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(cfg.Signals) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more signals", len(cfg.Signals)-maxItemsToShow))
	}

	p.printBox("STRATEGY SIGNALS", sb.String())
}

// PrintAggregate outputs an engagement aggregation summary.
func (p *Printer) PrintAggregate(s analytics.Summary) {
	if s.NoData {
		p.printBox("ENGAGEMENT SUMMARY", "No data in the requested window.")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Window: %s → %s\n\n",
		s.WindowStart.Format("2006-01-02"), s.WindowEnd.Format("2006-01-02")))

	count := min(len(s.Rows), maxItemsToShow)
	for i := 0; i < count; i++ {
		row := s.Rows[i]
		sb.WriteString(fmt.Sprintf("%s/%s  n=%d\n", row.Platform, row.Language, row.Count))
		sb.WriteString(fmt.Sprintf("  mean %.4f  median %.4f  views %d\n", row.MeanRate, row.MedianRate, row.TotalViews))
	}
	if len(s.Rows) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more rows\n", len(s.Rows)-maxItemsToShow))
	}

	p.printBox("ENGAGEMENT SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}
