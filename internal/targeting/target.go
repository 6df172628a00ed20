package targeting

import (
	"strings"

	"github.com/rahulj/polypost/internal/collab"
	"github.com/rahulj/polypost/internal/types"
)

// Options carry the non-text inputs the targeter formats around.
type Options struct {
	Context  string
	Language string
	Tone     types.Tone
}

// Result is a platform-ready rendition of the content.
type Result struct {
	Text      string               `json:"text"`
	Hashtags  []string             `json:"hashtags,omitempty"`
	Truncated bool                 `json:"truncated,omitempty"`
	Audio     *types.AudioSegments `json:"audio,omitempty"`
	Spec      types.PlatformSpec   `json:"spec"`
}

// Target formats text for one platform. Unknown platforms fail with
// UnsupportedPlatformError.
func Target(text, platform string, opts Options) (Result, error) {
	spec, ok := Spec(platform)
	if !ok {
		return Result{}, &types.UnsupportedPlatformError{Platform: platform}
	}

	tags := hashtags(text, opts.Context, spec.MinHashtags, spec.MaxHashtags)

	// Hashtags count against the platform cap, so the body budget shrinks
	// by the rendered suffix.
	budget := spec.MaxLength
	suffix := ""
	if len(tags) > 0 {
		suffix = "\n\n" + strings.Join(tags, " ")
		budget -= len([]rune(suffix))
	}

	body, truncated := truncateAtWord(text, budget)
	res := Result{
		Text:      body + suffix,
		Hashtags:  tags,
		Truncated: truncated,
		Spec:      spec,
	}

	if spec.AudioFirst {
		res.Audio = audioWrap(body, opts.Tone, spec)
	}
	return res, nil
}

// truncateAtWord cuts text at the last word boundary within limit runes,
// appending an ellipsis that counts against the limit.
func truncateAtWord(text string, limit int) (string, bool) {
	runes := []rune(text)
	if limit <= 0 {
		return "", true
	}
	if len(runes) <= limit {
		return text, false
	}

	const ellipsis = "..."
	cut := limit - len(ellipsis)
	if cut <= 0 {
		return string(runes[:limit]), true
	}

	head := string(runes[:cut])
	if idx := strings.LastIndexAny(head, " \n\t"); idx > 0 {
		head = head[:idx]
	}
	return strings.TrimRight(head, " ,;:") + ellipsis, true
}

// Audio intro and outro lines by tone register. The body rides between them.
var audioIntros = map[types.Tone]string{
	types.ToneDevotional: "Welcome. Settle in for a moment of devotion.",
	types.ToneCalming:    "Take a slow breath. Here is today's reflection.",
	types.ToneEnergetic:  "Hey! Here's your boost for today.",
}

var audioOutros = map[types.Tone]string{
	types.ToneDevotional: "Carry this blessing with you. Until next time.",
	types.ToneCalming:    "Rest easy. We'll see you tomorrow.",
	types.ToneEnergetic:  "Now go make it happen. See you tomorrow!",
}

const (
	defaultIntro = "Welcome back. Here's today's thought."
	defaultOutro = "Follow for more. Until next time."
)

// audioWrap builds the audio-first segments, trimming the body estimate to
// fit the platform's duration ceiling.
func audioWrap(body string, tone types.Tone, spec types.PlatformSpec) *types.AudioSegments {
	in, ok := audioIntros[tone]
	if !ok {
		in = defaultIntro
	}
	out, ok := audioOutros[tone]
	if !ok {
		out = defaultOutro
	}

	bodySec := collab.EstimateSeconds(body)
	totalSec := collab.EstimateSeconds(in) + bodySec + collab.EstimateSeconds(out)
	if spec.AudioMaxSec > 0 && totalSec > spec.AudioMaxSec {
		// Trim words off the body until the whole segment fits.
		words := strings.Fields(body)
		frame := collab.EstimateSeconds(in) + collab.EstimateSeconds(out)
		keep := int((spec.AudioMaxSec - frame) * 2.5)
		if keep < 0 {
			keep = 0
		}
		for keep > 0 && frame+float64(keep)/2.5 > spec.AudioMaxSec {
			keep--
		}
		if keep < len(words) {
			words = words[:keep]
		}
		body = strings.Join(words, " ")
		bodySec = collab.EstimateSeconds(body)
		totalSec = frame + bodySec
	}

	return &types.AudioSegments{
		Intro:        in,
		Outro:        out,
		BodySeconds:  bodySec,
		TotalSeconds: totalSec,
	}
}
