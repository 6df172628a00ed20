// Package collab defines the external collaborator contracts the pipeline
// depends on, together with local simulated implementations used by the CLI
// and tests.
package collab

import (
	"strings"
)

// SanitizeResult is the sanitizer's verdict on one piece of content.
type SanitizeResult struct {
	Clean     bool     `json:"clean"`
	Flags     []string `json:"flags,omitempty"`
	BiasScore float64  `json:"bias_score"`
}

// Sanitizer screens content before it enters the pipeline. A non-clean
// verdict is a hard stop for the item.
type Sanitizer interface {
	Sanitize(text string) SanitizeResult
}

// WordListSanitizer flags content containing any blocked term and scores
// mild bias terms without blocking on them.
type WordListSanitizer struct {
	Blocked []string
	Biased  []string
}

// NewWordListSanitizer returns a sanitizer with the default word lists.
func NewWordListSanitizer() *WordListSanitizer {
	return &WordListSanitizer{
		Blocked: []string{
			"hate", "kill", "attack", "violence", "slur",
			"scam", "fraud", "terror",
		},
		Biased: []string{
			"always", "never", "everyone", "nobody", "best", "worst",
		},
	}
}

// Sanitize screens text against the blocked and biased word lists.
func (s *WordListSanitizer) Sanitize(text string) SanitizeResult {
	words := tokenize(text)
	if len(words) == 0 {
		return SanitizeResult{Clean: false, Flags: []string{"empty"}}
	}

	var flags []string
	for _, w := range words {
		for _, blocked := range s.Blocked {
			if w == blocked {
				flags = append(flags, "blocked:"+blocked)
			}
		}
	}

	biasHits := 0
	for _, w := range words {
		for _, biased := range s.Biased {
			if w == biased {
				biasHits++
			}
		}
	}
	score := float64(biasHits) / float64(len(words))

	return SanitizeResult{
		Clean:     len(flags) == 0,
		Flags:     flags,
		BiasScore: score,
	}
}

func tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,!?;:\"'()[]")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
