package langroute

import (
	"strings"
	"unicode"

	"github.com/rahulj/polypost/internal/types"
)

// DefaultThreshold is the minimum confidence for a routing decision to stand.
const DefaultThreshold = 0.6

// Decision is the router's verdict on one piece of text.
type Decision struct {
	Language      string               `json:"language"`
	Family        types.PipelineFamily `json:"family"`
	Confidence    float64              `json:"confidence"`
	LowConfidence bool                 `json:"low_confidence"`
}

// Router classifies text by script ranges first, then by Latin stop-word
// scoring. It is stateless and safe for concurrent use.
type Router struct {
	// Threshold below which the decision falls back to Default.
	Threshold float64
	// Default is the fallback language; DefaultLanguage when empty.
	Default string
}

// New returns a Router with the default threshold and fallback.
func New() *Router {
	return &Router{Threshold: DefaultThreshold, Default: DefaultLanguage}
}

// Route classifies text. It never returns an error; unclassifiable text
// routes to the default language with LowConfidence set.
func (r *Router) Route(text string) Decision {
	threshold := r.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	fallback := r.Default
	if fallback == "" {
		fallback = DefaultLanguage
	}

	lang, conf := detect(text)
	if lang == "" || conf < threshold || !IsSupported(lang) {
		return Decision{
			Language:      fallback,
			Family:        FamilyOf(fallback),
			Confidence:    conf,
			LowConfidence: true,
		}
	}
	return Decision{Language: lang, Family: FamilyOf(lang), Confidence: conf}
}

type scriptRange struct {
	lo, hi rune
	lang   string
}

// Script blocks with an unambiguous language in the supported set.
var scriptRanges = []scriptRange{
	{0x0980, 0x09FF, "bn"},
	{0x0A00, 0x0A7F, "pa"},
	{0x0A80, 0x0AFF, "gu"},
	{0x0B80, 0x0BFF, "ta"},
	{0x0C00, 0x0C7F, "te"},
	{0x0C80, 0x0CFF, "kn"},
	{0x0D00, 0x0D7F, "ml"},
	{0x0400, 0x04FF, "ru"},
	{0xAC00, 0xD7AF, "ko"},
	{0x1100, 0x11FF, "ko"},
}

// Marker words separating the Devanagari languages. Hindi wins ties.
var sanskritMarkers = []string{"अस्ति", "भवति", "नमः", "एव", "इति"}
var marathiMarkers = []string{"आहे", "आणि", "मी", "तू", "होते"}

// Stop words for the Latin-script candidates. Shared words are omitted so a
// hit is discriminating.
var latinStopWords = map[string][]string{
	"en": {"the", "and", "is", "of", "to", "in", "that", "it", "will", "with", "this", "for"},
	"es": {"el", "la", "los", "las", "es", "y", "que", "en", "una", "por", "para", "con"},
	"fr": {"le", "la", "les", "est", "et", "que", "dans", "une", "pour", "avec", "pas", "vous"},
	"de": {"der", "die", "das", "und", "ist", "nicht", "ein", "eine", "mit", "für", "auf", "wird"},
	"it": {"il", "lo", "gli", "che", "è", "e", "una", "per", "con", "non", "sono", "della"},
	"pt": {"o", "os", "as", "é", "e", "que", "uma", "para", "com", "não", "você", "mais"},
}

// detect returns the best language guess and a confidence in [0,1].
func detect(text string) (string, float64) {
	var total, latin, kana, han int
	counts := map[string]int{}
	devanagari := 0

	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		total++
		switch {
		case r >= 0x0900 && r <= 0x097F:
			devanagari++
		case r >= 0x3040 && r <= 0x30FF:
			kana++
		case r >= 0x4E00 && r <= 0x9FFF:
			han++
		case r <= 0x024F:
			latin++
		default:
			for _, sr := range scriptRanges {
				if r >= sr.lo && r <= sr.hi {
					counts[sr.lang]++
					break
				}
			}
		}
	}
	if total == 0 {
		return "", 0
	}

	// Kana is decisive for Japanese even in mixed kana/kanji text.
	if kana > 0 && kana+han > total/2 {
		return "ja", float64(kana+han) / float64(total)
	}
	if han > 0 && han > total/2 {
		return "zh", float64(han) / float64(total)
	}

	if devanagari > total/2 {
		return disambiguateDevanagari(text), float64(devanagari) / float64(total)
	}

	best, bestCount := "", 0
	for lang, n := range counts {
		if n > bestCount {
			best, bestCount = lang, n
		}
	}
	if bestCount > total/2 {
		return best, float64(bestCount) / float64(total)
	}

	if latin > total/2 {
		return scoreLatin(text, float64(latin)/float64(total))
	}
	return "", 0
}

func disambiguateDevanagari(text string) string {
	for _, m := range sanskritMarkers {
		if strings.Contains(text, m) {
			return "sa"
		}
	}
	for _, m := range marathiMarkers {
		if strings.Contains(text, m) {
			return "mr"
		}
	}
	return "hi"
}

// scoreLatin picks among the Latin-script candidates by stop-word hits.
// Confidence scales with hit density, capped by the script confidence.
func scoreLatin(text string, scriptConf float64) (string, float64) {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return "", 0
	}
	cleaned := make([]string, 0, len(words))
	for _, w := range words {
		cleaned = append(cleaned, strings.Trim(w, ".,!?;:\"'()"))
	}

	best, bestHits := "", 0
	for lang, stops := range latinStopWords {
		hits := 0
		for _, w := range cleaned {
			for _, s := range stops {
				if w == s {
					hits++
					break
				}
			}
		}
		if hits > bestHits || (hits == bestHits && hits > 0 && lang == "en") {
			best, bestHits = lang, hits
		}
	}
	if bestHits == 0 {
		return "", scriptConf * 0.3
	}

	// Stop words make up roughly a third of running text; full density
	// means full confidence.
	density := float64(bestHits) / float64(len(cleaned)) * 3
	if density > 1 {
		density = 1
	}
	conf := density * scriptConf
	return best, conf
}
