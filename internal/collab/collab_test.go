package collab

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordListSanitizer(t *testing.T) {
	s := NewWordListSanitizer()

	tests := []struct {
		name  string
		text  string
		clean bool
	}{
		{"clean content", "Stay strong, the storm will pass", true},
		{"blocked term", "spread hate everywhere", false},
		{"blocked term with punctuation", "this is a scam!", false},
		{"empty input", "   ", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := s.Sanitize(tt.text)
			assert.Equal(t, tt.clean, res.Clean)
			if !tt.clean {
				assert.NotEmpty(t, res.Flags)
			}
		})
	}
}

func TestWordListSanitizerBiasScore(t *testing.T) {
	s := NewWordListSanitizer()
	res := s.Sanitize("everyone always wins")
	assert.True(t, res.Clean, "biased terms score but do not block")
	assert.InDelta(t, 2.0/3.0, res.BiasScore, 1e-9)
}

func TestSimulatedSynthesizer(t *testing.T) {
	res := SimulatedSynthesizer{}.Synthesize("one two three four five", "en_us_neutral")
	assert.InDelta(t, 2.0, res.Seconds, 1e-9, "5 words at 2.5 wps")
	assert.Contains(t, res.AudioRef, "tts://en_us_neutral/")
	assert.Equal(t, "en_us_neutral", res.VoiceTag)
}

func TestChecksumArchiver(t *testing.T) {
	a := ChecksumArchiver{}
	r1 := a.Archive("key1", "same text")
	r2 := a.Archive("key2", "same text")
	assert.Equal(t, r1.Checksum, r2.Checksum, "checksum depends on text only")
	assert.Equal(t, "archive://key1", r1.Ref)
	assert.Len(t, r1.Checksum, 64)
}

func TestFileKillSwitch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kill_switch")
	ks := FileKillSwitch{Path: path}
	assert.False(t, ks.Active())

	require.NoError(t, os.WriteFile(path, []byte("halt"), 0o644))
	assert.True(t, ks.Active())

	require.NoError(t, os.Remove(path))
	assert.False(t, ks.Active())

	assert.False(t, FileKillSwitch{}.Active(), "unconfigured switch is inactive")
	assert.True(t, StaticKillSwitch{Engaged: true}.Active())
}
