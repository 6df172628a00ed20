package translation

import (
	"strings"
	"unicode"

	"github.com/rahulj/polypost/internal/types"
)

// Formality substitutions for English text. Other languages only get the
// emoji pass; register shifts there are left to the translator prompt.
var formalSubs = map[string]string{
	"can't":  "cannot",
	"won't":  "will not",
	"don't":  "do not",
	"it's":   "it is",
	"you're": "you are",
	"gonna":  "going to",
	"wanna":  "want to",
	"hey":    "hello",
}

var casualSubs = map[string]string{
	"cannot":   "can't",
	"will not": "won't",
	"do not":   "don't",
	"hello":    "hey",
}

// Personalize adjusts register and symbol use for one recipient profile.
// Meaning is never altered; only formality markers and emoji change. The
// second return reports whether anything was rewritten.
func Personalize(text, lang string, profile *types.UserProfile) (string, bool) {
	if profile == nil {
		return text, false
	}
	out := text

	if profile.AvoidEmojis {
		out = stripEmojis(out)
	}

	if strings.ToLower(lang) == "en" {
		switch strings.ToLower(profile.Formality) {
		case "formal":
			out = substituteWords(out, formalSubs)
		case "casual":
			out = substituteWords(out, casualSubs)
		}
	}

	return out, out != text
}

func substituteWords(text string, subs map[string]string) string {
	// Phrase-level entries first so "will not" beats "not".
	for from, to := range subs {
		if strings.Contains(from, " ") {
			text = replaceFold(text, from, to)
		}
	}
	fields := strings.Fields(text)
	for i, f := range fields {
		core := strings.Trim(f, ".,!?;:\"'()")
		if to, ok := subs[strings.ToLower(core)]; ok {
			fields[i] = strings.Replace(f, core, to, 1)
		}
	}
	return strings.Join(fields, " ")
}

// replaceFold is a case-insensitive whole-substring replace.
func replaceFold(text, from, to string) string {
	lower := strings.ToLower(text)
	from = strings.ToLower(from)
	var b strings.Builder
	for {
		idx := strings.Index(lower, from)
		if idx < 0 {
			b.WriteString(text)
			return b.String()
		}
		b.WriteString(text[:idx])
		b.WriteString(to)
		text = text[idx+len(from):]
		lower = lower[idx+len(from):]
	}
}

func stripEmojis(text string) string {
	var b strings.Builder
	for _, r := range text {
		if unicode.Is(unicode.So, r) || (r >= 0x1F300 && r <= 0x1FAFF) || (r >= 0x2600 && r <= 0x27BF) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
