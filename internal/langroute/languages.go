// Package langroute classifies incoming text into one of the supported
// languages and assigns it a processing family. Routing never fails: text
// that cannot be classified confidently falls back to the default language
// with a low-confidence flag.
package langroute

import (
	"strings"

	"github.com/rahulj/polypost/internal/types"
)

// DefaultLanguage is the fallback when detection confidence is too low.
const DefaultLanguage = "en"

// registry is the closed set of supported languages. Codes outside this
// table are rejected by the translation stage.
var registry = map[string]types.LanguageProfile{
	"hi": {Code: "hi", Name: "Hindi", Family: types.FamilyIndic, DefaultTone: types.ToneUplifting, DefaultVoice: "hi_in_warm"},
	"sa": {Code: "sa", Name: "Sanskrit", Family: types.FamilyIndic, DefaultTone: types.ToneDevotional, DefaultVoice: "sa_in_sacred"},
	"mr": {Code: "mr", Name: "Marathi", Family: types.FamilyIndic, DefaultTone: types.ToneNeutral, DefaultVoice: "mr_in_calm"},
	"gu": {Code: "gu", Name: "Gujarati", Family: types.FamilyIndic, DefaultTone: types.ToneNeutral, DefaultVoice: "gu_in_friendly"},
	"bn": {Code: "bn", Name: "Bengali", Family: types.FamilyIndic, DefaultTone: types.ToneNeutral, DefaultVoice: "bn_in_melodic"},
	"pa": {Code: "pa", Name: "Punjabi", Family: types.FamilyIndic, DefaultTone: types.ToneEnergetic, DefaultVoice: "pa_in_energetic"},
	"ta": {Code: "ta", Name: "Tamil", Family: types.FamilyDravidian, DefaultTone: types.ToneNeutral, DefaultVoice: "ta_in_warm"},
	"te": {Code: "te", Name: "Telugu", Family: types.FamilyDravidian, DefaultTone: types.ToneNeutral, DefaultVoice: "te_in_bright"},
	"kn": {Code: "kn", Name: "Kannada", Family: types.FamilyDravidian, DefaultTone: types.ToneNeutral, DefaultVoice: "kn_in_calm"},
	"ml": {Code: "ml", Name: "Malayalam", Family: types.FamilyDravidian, DefaultTone: types.ToneNeutral, DefaultVoice: "ml_in_soft"},
	"en": {Code: "en", Name: "English", Family: types.FamilyLatin, DefaultTone: types.ToneNeutral, DefaultVoice: "en_us_neutral"},
	"es": {Code: "es", Name: "Spanish", Family: types.FamilyLatin, DefaultTone: types.ToneNeutral, DefaultVoice: "es_es_warm"},
	"fr": {Code: "fr", Name: "French", Family: types.FamilyLatin, DefaultTone: types.ToneNeutral, DefaultVoice: "fr_fr_soft"},
	"de": {Code: "de", Name: "German", Family: types.FamilyLatin, DefaultTone: types.ToneProfessional, DefaultVoice: "de_de_clear"},
	"it": {Code: "it", Name: "Italian", Family: types.FamilyLatin, DefaultTone: types.ToneNeutral, DefaultVoice: "it_it_expressive"},
	"pt": {Code: "pt", Name: "Portuguese", Family: types.FamilyLatin, DefaultTone: types.ToneNeutral, DefaultVoice: "pt_br_friendly"},
	"ru": {Code: "ru", Name: "Russian", Family: types.FamilyLatin, DefaultTone: types.ToneNeutral, DefaultVoice: "ru_ru_deep"},
	"ja": {Code: "ja", Name: "Japanese", Family: types.FamilyCJK, DefaultTone: types.ToneCalming, DefaultVoice: "ja_jp_polite"},
	"ko": {Code: "ko", Name: "Korean", Family: types.FamilyCJK, DefaultTone: types.ToneNeutral, DefaultVoice: "ko_kr_bright"},
	"zh": {Code: "zh", Name: "Chinese", Family: types.FamilyCJK, DefaultTone: types.ToneNeutral, DefaultVoice: "zh_cn_standard"},
}

// Supported returns the codes of all supported languages.
func Supported() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// IsSupported reports whether code is in the supported set.
func IsSupported(code string) bool {
	_, ok := registry[strings.ToLower(code)]
	return ok
}

// Profile returns the language profile for code.
func Profile(code string) (types.LanguageProfile, bool) {
	p, ok := registry[strings.ToLower(code)]
	return p, ok
}

// FamilyOf returns the processing family for code, or the default family
// for unknown codes.
func FamilyOf(code string) types.PipelineFamily {
	if p, ok := registry[strings.ToLower(code)]; ok {
		return p.Family
	}
	return types.FamilyLatin
}
