package sentiment

import (
	"hash/fnv"
	"strings"

	"github.com/rahulj/polypost/internal/types"
)

// Result is the tuner's output for one piece of content.
type Result struct {
	Text             string          `json:"text"`
	Tone             types.Tone      `json:"tone"`
	Intensity        types.Intensity `json:"intensity"`
	Weight           float64         `json:"weight"`
	Anchors          []string        `json:"anchors,omitempty"`
	AnchorsPreserved bool            `json:"anchors_preserved"`
}

// Tune rewrites text toward the requested tone. The same input always
// produces the same output. Unknown tones fail with InvalidToneError;
// an empty intensity defaults to moderate.
func Tune(text string, profile types.ToneProfile) (Result, error) {
	if !profile.Tone.Valid() {
		return Result{}, &types.InvalidToneError{Tone: string(profile.Tone)}
	}
	intensity := profile.Intensity
	if intensity == "" {
		intensity = types.IntensityModerate
	}
	if !intensity.Valid() {
		intensity = types.IntensityModerate
	}

	lex := lexicons[string(profile.Tone)]
	weight := intensityWeight[string(intensity)]
	anchors := anchorTokens(text)

	out := strings.TrimSpace(text)
	if !profile.PreserveMeaning {
		out = applySwaps(out, lex.swaps)
	}

	seed := stableSeed(text)
	switch intensity {
	case types.IntensitySubtle:
		// Subtle only nudges word choice; structure is untouched.
	case types.IntensityModerate:
		if opener := pick(lex.openers, seed); opener != "" {
			out = opener + " " + out
		}
	case types.IntensityStrong:
		if opener := pick(lex.openers, seed); opener != "" {
			out = opener + " " + out
		}
		if closer := pick(lex.closers, seed); closer != "" {
			out = strings.TrimRight(out, " ") + " " + closer
		}
	}

	return Result{
		Text:             out,
		Tone:             profile.Tone,
		Intensity:        intensity,
		Weight:           weight,
		Anchors:          anchors,
		AnchorsPreserved: containsAll(out, anchors),
	}, nil
}

// anchorTokens extracts the meaning-bearing tokens of text: words of four
// or more letters, lower-cased, deduplicated in order.
func anchorTokens(text string) []string {
	seen := map[string]bool{}
	var anchors []string
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ".,!?;:\"'()")
		if len([]rune(w)) < 4 || seen[w] {
			continue
		}
		seen[w] = true
		anchors = append(anchors, w)
	}
	return anchors
}

func containsAll(text string, anchors []string) bool {
	lower := strings.ToLower(text)
	for _, a := range anchors {
		if !strings.Contains(lower, a) {
			return false
		}
	}
	return true
}

// applySwaps substitutes whole words only, keeping punctuation intact.
func applySwaps(text string, swaps map[string]string) string {
	if len(swaps) == 0 {
		return text
	}
	fields := strings.Fields(text)
	for i, f := range fields {
		core := strings.Trim(f, ".,!?;:\"'()")
		if repl, ok := swaps[strings.ToLower(core)]; ok {
			fields[i] = strings.Replace(f, core, repl, 1)
		}
	}
	return strings.Join(fields, " ")
}

func pick(options []string, seed uint32) string {
	if len(options) == 0 {
		return ""
	}
	return options[int(seed)%len(options)]
}

func stableSeed(text string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	return h.Sum32()
}
