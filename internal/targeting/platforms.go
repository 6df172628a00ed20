// Package targeting formats tuned content for each publishing platform:
// length caps with word-boundary truncation, hashtag policy, and audio-first
// wrapping for platforms that lead with audio.
package targeting

import (
	"sort"
	"strings"

	"github.com/rahulj/polypost/internal/types"
)

var platforms = map[string]types.PlatformSpec{
	"twitter": {
		Name: "twitter", Category: "short-form",
		MaxLength: 280, MinHashtags: 1, MaxHashtags: 2,
	},
	"instagram": {
		Name: "instagram", Category: "short-form",
		MaxLength: 2200, MinHashtags: 3, MaxHashtags: 4,
	},
	"linkedin": {
		Name: "linkedin", Category: "long-form",
		MaxLength: 3000, MinHashtags: 2, MaxHashtags: 5,
	},
	"spotify": {
		Name: "spotify", Category: "audio-first",
		MaxLength: 500, MinHashtags: 0, MaxHashtags: 0,
		AudioFirst: true, AudioMaxSec: 30,
	},
}

// Specs returns all platform specs sorted by name.
func Specs() []types.PlatformSpec {
	out := make([]types.PlatformSpec, 0, len(platforms))
	for _, p := range platforms {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Spec returns the spec for one platform.
func Spec(name string) (types.PlatformSpec, bool) {
	p, ok := platforms[strings.ToLower(name)]
	return p, ok
}

// Names returns the supported platform names sorted alphabetically.
func Names() []string {
	names := make([]string, 0, len(platforms))
	for n := range platforms {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
