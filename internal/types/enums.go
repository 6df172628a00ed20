// Package types defines the shared data model for the publishing pipeline.
package types

// Tone is an emotional register a content item can be rewritten toward.
type Tone string

const (
	ToneUplifting     Tone = "uplifting"
	ToneMotivational  Tone = "motivational"
	ToneInspirational Tone = "inspirational"
	ToneCalming       Tone = "calming"
	ToneEnergetic     Tone = "energetic"
	ToneProfessional  Tone = "professional"
	ToneCasual        Tone = "casual"
	ToneDevotional    Tone = "devotional"
	ToneNeutral       Tone = "neutral"
	ToneEmpathetic    Tone = "empathetic"
)

// AllTones lists every tone the sentiment tuner accepts.
var AllTones = []Tone{
	ToneUplifting, ToneMotivational, ToneInspirational, ToneCalming,
	ToneEnergetic, ToneProfessional, ToneCasual, ToneDevotional,
	ToneNeutral, ToneEmpathetic,
}

// Valid reports whether t is one of the enumerated tones.
func (t Tone) Valid() bool {
	for _, known := range AllTones {
		if t == known {
			return true
		}
	}
	return false
}

// Intensity controls how aggressively the sentiment tuner rewrites text.
type Intensity string

const (
	IntensitySubtle   Intensity = "subtle"
	IntensityModerate Intensity = "moderate"
	IntensityStrong   Intensity = "strong"
)

// Valid reports whether i is one of the enumerated intensities.
func (i Intensity) Valid() bool {
	return i == IntensitySubtle || i == IntensityModerate || i == IntensityStrong
}

// PipelineFamily groups languages sharing script and structural handling rules.
type PipelineFamily string

const (
	FamilyIndic     PipelineFamily = "indic"
	FamilyDravidian PipelineFamily = "dravidian"
	FamilyCJK       PipelineFamily = "cjk"
	FamilyRTL       PipelineFamily = "rtl"
	FamilyLatin     PipelineFamily = "latin-default"
)

// PublishStatus is the lifecycle state of a simulated publication.
type PublishStatus string

const (
	StatusScheduled PublishStatus = "scheduled"
	StatusPublished PublishStatus = "published"
	StatusAborted   PublishStatus = "aborted"
)

// CanTransition reports whether moving from s to next is a legal state change.
// The only legal transitions are scheduled->published and scheduled->aborted;
// published and aborted are terminal.
func (s PublishStatus) CanTransition(next PublishStatus) bool {
	if s != StatusScheduled {
		return false
	}
	return next == StatusPublished || next == StatusAborted
}

// PerformanceClass is the strategy engine's verdict on a platform/language/tone combination.
type PerformanceClass string

const (
	PerfHigh    PerformanceClass = "high-performing"
	PerfUnder   PerformanceClass = "underperforming"
	PerfNeutral PerformanceClass = "neutral"
)
