package translation

import (
	"context"
	"hash/fnv"
	"strings"

	"github.com/rahulj/polypost/internal/langroute"
	"github.com/rahulj/polypost/internal/types"
)

// simVocab is a small native-script vocabulary per language. Function words
// come first so simulated output remains classifiable by the router.
type simVocab struct {
	stops   []string
	content []string
}

var simVocabs = map[string]simVocab{
	"hi": {stops: []string{"है", "और", "यह", "सब"}, content: []string{"आशा", "शक्ति", "प्रकाश", "जीवन", "मार्ग", "साहस"}},
	"sa": {stops: []string{"अस्ति", "इति", "एव", "भवति"}, content: []string{"धैर्यम्", "शान्तिः", "प्रकाशः", "जीवनम्"}},
	"mr": {stops: []string{"आहे", "आणि", "मी", "तू"}, content: []string{"जीवन", "प्रकाश", "वाट", "धैर्य"}},
	"gu": {stops: []string{"છે", "અને", "આ", "તે"}, content: []string{"આશા", "શક્તિ", "પ્રકાશ", "જીવન"}},
	"bn": {stops: []string{"এই", "এবং", "হয়", "সে"}, content: []string{"আশা", "শক্তি", "আলো", "জীবন"}},
	"pa": {stops: []string{"ਹੈ", "ਅਤੇ", "ਇਹ", "ਉਹ"}, content: []string{"ਆਸ", "ਤਾਕਤ", "ਚਾਨਣ", "ਜੀਵਨ"}},
	"ta": {stops: []string{"இது", "மற்றும்", "ஒரு", "என"}, content: []string{"நம்பிக்கை", "வலிமை", "ஒளி", "வாழ்க்கை"}},
	"te": {stops: []string{"ఇది", "మరియు", "ఒక", "అని"}, content: []string{"ఆశ", "శక్తి", "వెలుగు", "జీవితం"}},
	"kn": {stops: []string{"ಇದು", "ಮತ್ತು", "ಒಂದು", "ಆಗ"}, content: []string{"ಭರವಸೆ", "ಶಕ್ತಿ", "ಬೆಳಕು", "ಜೀವನ"}},
	"ml": {stops: []string{"ഇത്", "ഒരു", "ആണ്", "എന്ന"}, content: []string{"പ്രത്യാശ", "ശക്തി", "വെളിച്ചം", "ജീവിതം"}},
	"en": {stops: []string{"the", "will", "that", "with"}, content: []string{"hope", "light", "courage", "path"}},
	"es": {stops: []string{"el", "los", "por", "las"}, content: []string{"esperanza", "fuerza", "camino", "vida"}},
	"fr": {stops: []string{"dans", "les", "avec", "pour"}, content: []string{"espoir", "force", "chemin", "vie"}},
	"de": {stops: []string{"der", "und", "nicht", "mit"}, content: []string{"hoffnung", "kraft", "licht", "weg"}},
	"it": {stops: []string{"gli", "della", "sono", "il"}, content: []string{"speranza", "forza", "cammino", "vita"}},
	"pt": {stops: []string{"você", "não", "os", "mais"}, content: []string{"esperança", "força", "caminho", "vida"}},
	"ru": {stops: []string{"это", "и", "не", "для"}, content: []string{"надежда", "сила", "свет", "жизнь"}},
	"ja": {stops: []string{"これは", "です", "ある", "その"}, content: []string{"きぼう", "ちから", "ひかり", "いのち"}},
	"ko": {stops: []string{"이것은", "입니다", "있다", "그"}, content: []string{"희망", "힘", "빛", "삶"}},
	"zh": {stops: []string{"这是", "的", "在", "有"}, content: []string{"希望", "力量", "光明", "生命"}},
}

// SimTranslator is the offline translator: it maps each source word onto the
// target language's vocabulary. Output carries no meaning but is stable,
// native-script text of the same length, which is enough for previews and
// tests.
type SimTranslator struct{}

// Translate simulates a translation. It errors only on unsupported targets.
func (SimTranslator) Translate(_ context.Context, text, targetLang string, _ types.Tone) (Translation, error) {
	lang := strings.ToLower(targetLang)
	vocab, ok := simVocabs[lang]
	if !ok || !langroute.IsSupported(lang) {
		return Translation{}, &types.UnsupportedLanguageError{Language: targetLang}
	}

	words := strings.Fields(text)
	out := make([]string, len(words))
	for i, w := range words {
		h := int(wordHash(w))
		if i%2 == 0 {
			out[i] = vocab.stops[(h+i)%len(vocab.stops)]
		} else {
			out[i] = vocab.content[(h+i)%len(vocab.content)]
		}
	}
	return Translation{Text: strings.Join(out, " "), Confidence: 0.9}, nil
}

func wordHash(w string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(w)))
	return h.Sum32()
}
