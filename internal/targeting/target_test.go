package targeting

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulj/polypost/internal/types"
)

func TestTargetUnsupportedPlatform(t *testing.T) {
	_, err := Target("hello", "myspace", Options{})
	require.Error(t, err)
	var platErr *types.UnsupportedPlatformError
	require.ErrorAs(t, err, &platErr)
	assert.Equal(t, "myspace", platErr.Platform)
}

func TestTargetLengthCaps(t *testing.T) {
	long := strings.Repeat("inspiration takes many forms ", 200)

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			spec, _ := Spec(name)
			res, err := Target(long, name, Options{Context: "motivational"})
			require.NoError(t, err)
			assert.LessOrEqual(t, len([]rune(res.Text)), spec.MaxLength)
			assert.True(t, res.Truncated)
		})
	}
}

func TestTargetTruncatesAtWordBoundary(t *testing.T) {
	long := strings.Repeat("wisdom flows gently ", 30)
	res, err := Target(long, "twitter", Options{Context: "spiritual"})
	require.NoError(t, err)
	assert.True(t, res.Truncated)

	body := strings.SplitN(res.Text, "\n\n", 2)[0]
	assert.True(t, strings.HasSuffix(body, "..."))
	trimmed := strings.TrimSuffix(body, "...")
	lastWord := trimmed[strings.LastIndex(trimmed, " ")+1:]
	assert.Contains(t, []string{"wisdom", "flows", "gently"}, lastWord, "cut lands on a whole word")
}

func TestTargetShortTextUntouched(t *testing.T) {
	res, err := Target("Stay strong, the storm will pass", "linkedin", Options{Context: "motivational"})
	require.NoError(t, err)
	assert.False(t, res.Truncated)
	assert.True(t, strings.HasPrefix(res.Text, "Stay strong, the storm will pass"))
}

func TestTargetHashtagPolicy(t *testing.T) {
	text := "Stay strong, the storm will pass"

	tests := []struct {
		platform string
		min, max int
	}{
		{"twitter", 1, 2},
		{"instagram", 3, 4},
		{"linkedin", 2, 5},
		{"spotify", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.platform, func(t *testing.T) {
			res, err := Target(text, tt.platform, Options{Context: "motivational"})
			require.NoError(t, err)
			assert.GreaterOrEqual(t, len(res.Hashtags), tt.min)
			assert.LessOrEqual(t, len(res.Hashtags), tt.max)
			seen := map[string]bool{}
			for _, tag := range res.Hashtags {
				assert.True(t, strings.HasPrefix(tag, "#"))
				assert.Equal(t, strings.ToLower(tag), tag, "tags are lower-cased")
				assert.False(t, seen[tag], "tags are deduplicated")
				seen[tag] = true
			}
		})
	}
}

func TestTargetKeywordFallback(t *testing.T) {
	res, err := Target("gratitude practice transforms ordinary moments", "twitter", Options{Context: "unknown-context"})
	require.NoError(t, err)
	require.NotEmpty(t, res.Hashtags, "minimum met via keyword extraction")
	for _, tag := range res.Hashtags {
		assert.GreaterOrEqual(t, len(tag), 5)
	}
}

func TestTargetHashtagMinimumWhenNothingExtractable(t *testing.T) {
	// Unknown context and no content word long enough for extraction.
	res, err := Target("Go be joy now", "twitter", Options{Context: "unknown-context"})
	require.NoError(t, err)
	require.NotEmpty(t, res.Hashtags, "minimum is met from the fallback tags")
	assert.Equal(t, "#daily", res.Hashtags[0])
}

func TestTargetAudioFirst(t *testing.T) {
	res, err := Target("Take heart and keep walking your path with quiet courage", "spotify", Options{Tone: types.ToneCalming})
	require.NoError(t, err)
	require.NotNil(t, res.Audio)
	assert.Equal(t, "Take a slow breath. Here is today's reflection.", res.Audio.Intro)
	assert.NotEmpty(t, res.Audio.Outro)
	assert.Greater(t, res.Audio.TotalSeconds, res.Audio.BodySeconds)
	assert.LessOrEqual(t, res.Audio.TotalSeconds, 30.0)
	assert.Empty(t, res.Hashtags)
}

func TestTargetAudioTrimsToFit(t *testing.T) {
	long := strings.Repeat("endless words roll on ", 20)
	res, err := Target(long, "spotify", Options{Tone: types.ToneEnergetic})
	require.NoError(t, err)
	require.NotNil(t, res.Audio)
	assert.LessOrEqual(t, res.Audio.TotalSeconds, 30.0)
}

func TestSpecsAndNames(t *testing.T) {
	assert.Equal(t, []string{"instagram", "linkedin", "spotify", "twitter"}, Names())
	specs := Specs()
	require.Len(t, specs, 4)
	for _, s := range specs {
		assert.Positive(t, s.MaxLength)
	}
}
