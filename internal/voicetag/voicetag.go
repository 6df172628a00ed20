// Package voicetag picks the text-to-speech voice for a language and tone.
// Selection walks a fixed fallback chain and always lands on a usable tag.
package voicetag

import (
	"strings"

	"github.com/rahulj/polypost/internal/langroute"
	"github.com/rahulj/polypost/internal/types"
)

// GlobalDefault is the voice of last resort.
const GlobalDefault = "en_us_neutral"

// voiceKey identifies one (language, tone) voice assignment.
type voiceKey struct {
	lang string
	tone types.Tone
}

// Tone-specific voice overrides. Pairs absent here resolve through the
// fallback chain to the language's default voice.
var voices = map[voiceKey]string{
	{"hi", types.ToneDevotional}: "hi_in_reverent",
	{"hi", types.ToneEnergetic}:  "hi_in_bright",
	{"sa", types.ToneDevotional}: "sa_in_sacred",
	{"sa", types.ToneCalming}:    "sa_in_meditative",
	{"ta", types.ToneDevotional}: "ta_in_reverent",
	{"en", types.ToneCalming}:    "en_us_soft",
	{"en", types.ToneEnergetic}:  "en_us_upbeat",
	{"en", types.ToneDevotional}: "en_us_warm",
	{"es", types.ToneEnergetic}:  "es_es_vivid",
	{"ja", types.ToneCalming}:    "ja_jp_gentle",
	{"zh", types.ToneProfessional}: "zh_cn_formal",
}

// Selection records which voice was chosen and which fallback produced it.
type Selection struct {
	VoiceTag string `json:"voice_tag"`
	Strategy string `json:"strategy"`
}

// strategy is one rung of the fallback chain.
type strategy struct {
	name    string
	resolve func(lang string, tone types.Tone) (string, bool)
}

// The chain is ordered: exact pair, language default, default-language pair,
// then the global default which always resolves.
var chain = []strategy{
	{"exact", func(lang string, tone types.Tone) (string, bool) {
		v, ok := voices[voiceKey{lang, tone}]
		return v, ok
	}},
	{"language-default", func(lang string, _ types.Tone) (string, bool) {
		if p, ok := langroute.Profile(lang); ok {
			return p.DefaultVoice, true
		}
		return "", false
	}},
	{"default-language", func(_ string, tone types.Tone) (string, bool) {
		v, ok := voices[voiceKey{langroute.DefaultLanguage, tone}]
		return v, ok
	}},
	{"global-default", func(_ string, _ types.Tone) (string, bool) {
		return GlobalDefault, true
	}},
}

// Select resolves the voice for a language/tone pair. It never fails; the
// final rung of the chain is a constant.
func Select(lang string, tone types.Tone) Selection {
	lang = strings.ToLower(lang)
	for _, s := range chain {
		if v, ok := s.resolve(lang, tone); ok && v != "" {
			return Selection{VoiceTag: v, Strategy: s.name}
		}
	}
	return Selection{VoiceTag: GlobalDefault, Strategy: "global-default"}
}
