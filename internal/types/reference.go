package types

// LanguageProfile describes one supported language and its handling defaults.
type LanguageProfile struct {
	Code         string         `json:"code"`
	Name         string         `json:"name"`
	Family       PipelineFamily `json:"family"`
	DefaultTone  Tone           `json:"default_tone"`
	DefaultVoice string         `json:"default_voice"`
}

// ToneProfile is the tuning request handed to the sentiment stage.
type ToneProfile struct {
	Tone            Tone      `json:"tone"`
	Intensity       Intensity `json:"intensity"`
	PreserveMeaning bool      `json:"preserve_meaning"`
}

// PlatformSpec describes one publishing target's formatting rules.
type PlatformSpec struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"` // short-form, long-form, audio-first
	MaxLength   int     `json:"max_length"`
	MinHashtags int     `json:"min_hashtags"`
	MaxHashtags int     `json:"max_hashtags"`
	AudioFirst  bool    `json:"audio_first"`
	AudioMaxSec float64 `json:"audio_max_sec,omitempty"`
}
