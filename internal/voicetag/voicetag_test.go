package voicetag

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rahulj/polypost/internal/langroute"
	"github.com/rahulj/polypost/internal/types"
)

func TestSelectExactMatch(t *testing.T) {
	sel := Select("hi", types.ToneDevotional)
	assert.Equal(t, "hi_in_reverent", sel.VoiceTag)
	assert.Equal(t, "exact", sel.Strategy)
}

func TestSelectLanguageDefault(t *testing.T) {
	sel := Select("ta", types.ToneCasual)
	assert.Equal(t, "ta_in_warm", sel.VoiceTag, "no (ta, casual) pair, falls to language default")
	assert.Equal(t, "language-default", sel.Strategy)
}

func TestSelectDefaultLanguagePair(t *testing.T) {
	sel := Select("xx", types.ToneCalming)
	assert.Equal(t, "en_us_soft", sel.VoiceTag, "unknown language borrows the default language's tone voice")
	assert.Equal(t, "default-language", sel.Strategy)
}

func TestSelectGlobalDefault(t *testing.T) {
	sel := Select("xx", types.ToneCasual)
	assert.Equal(t, GlobalDefault, sel.VoiceTag)
	assert.Equal(t, "global-default", sel.Strategy)
}

func TestSelectNeverEmpty(t *testing.T) {
	langs := append(langroute.Supported(), "", "xx", "KLINGON")
	tones := append([]types.Tone{}, types.AllTones...)
	tones = append(tones, types.Tone(""), types.Tone("bogus"))

	for _, lang := range langs {
		for _, tone := range tones {
			sel := Select(lang, tone)
			assert.NotEmpty(t, sel.VoiceTag, "lang=%q tone=%q", lang, tone)
		}
	}
}

func TestSelectCaseInsensitiveLanguage(t *testing.T) {
	assert.Equal(t, Select("HI", types.ToneDevotional), Select("hi", types.ToneDevotional))
}
