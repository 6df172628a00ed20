package targeting

import (
	"sort"
	"strings"
)

// Curated hashtag libraries by content context. Keyword extraction fills in
// when a library runs short or the context is unknown.
var hashtagLibraries = map[string][]string{
	"spiritual":    {"#peace", "#blessed", "#faith", "#innerpeace", "#spirituality"},
	"motivational": {"#motivation", "#mindset", "#growth", "#keepgoing", "#success"},
	"educational":  {"#learning", "#knowledge", "#education", "#didyouknow", "#insight"},
	"cultural":     {"#culture", "#heritage", "#tradition", "#community", "#roots"},
}

// fallbackTags tops the list up when neither the context library nor keyword
// extraction can satisfy a platform's minimum.
var fallbackTags = []string{"#daily", "#community", "#share"}

var keywordStopList = map[string]bool{
	"this": true, "that": true, "with": true, "will": true, "from": true,
	"have": true, "your": true, "they": true, "been": true, "were": true,
	"their": true, "about": true, "would": true, "there": true, "when": true,
}

// hashtags builds a tag list for the content: library tags for the context
// first, then extracted keywords until the minimum is met, capped at max.
func hashtags(text, context string, min, max int) []string {
	if max == 0 {
		return nil
	}

	var tags []string
	seen := map[string]bool{}
	for _, t := range hashtagLibraries[strings.ToLower(context)] {
		if len(tags) == max {
			break
		}
		if !seen[t] {
			seen[t] = true
			tags = append(tags, t)
		}
	}

	if len(tags) < min || len(tags) == 0 {
		for _, kw := range extractKeywords(text) {
			if len(tags) == max {
				break
			}
			tag := "#" + kw
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}

	for _, t := range fallbackTags {
		if len(tags) >= min {
			break
		}
		if !seen[t] {
			seen[t] = true
			tags = append(tags, t)
		}
	}
	return tags
}

// extractKeywords returns the most frequent content words of the text,
// lower-cased, most frequent first with ties broken alphabetically.
func extractKeywords(text string) []string {
	counts := map[string]int{}
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ".,!?;:\"'()#")
		if len([]rune(w)) < 4 || keywordStopList[w] {
			continue
		}
		counts[w]++
	}
	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return words[i] < words[j]
	})
	return words
}
