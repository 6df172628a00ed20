// Package sentiment rewrites content toward a requested emotional tone at a
// chosen intensity, preserving the meaning-bearing tokens of the original.
package sentiment

// lexicon holds the phrase inventory for one tone.
type lexicon struct {
	openers  []string
	closers  []string
	keywords []string
	// swaps are light word substitutions applied only when the caller
	// allows meaning drift.
	swaps map[string]string
}

var lexicons = map[string]lexicon{
	"uplifting": {
		openers:  []string{"Here's something beautiful:", "A bright thought for you:"},
		closers:  []string{"Keep shining.", "Brighter days are ahead."},
		keywords: []string{"hope", "light", "joy"},
		swaps:    map[string]string{"good": "wonderful", "nice": "delightful", "ok": "great"},
	},
	"motivational": {
		openers:  []string{"Push forward:", "Your moment is now:"},
		closers:  []string{"You have what it takes.", "Go make it happen."},
		keywords: []string{"strength", "drive", "momentum"},
		swaps:    map[string]string{"try": "commit", "can": "will", "maybe": "surely"},
	},
	"inspirational": {
		openers:  []string{"Let this sink in:", "A thought worth carrying:"},
		closers:  []string{"Greatness starts small.", "Let it inspire your day."},
		keywords: []string{"vision", "purpose", "courage"},
		swaps:    map[string]string{"idea": "vision", "goal": "calling"},
	},
	"calming": {
		openers:  []string{"Take a breath.", "Gently now:"},
		closers:  []string{"All is well.", "Peace be with you."},
		keywords: []string{"calm", "stillness", "ease"},
		swaps:    map[string]string{"fast": "steady", "rush": "flow", "worry": "rest"},
	},
	"energetic": {
		openers:  []string{"Let's go!", "Big energy:"},
		closers:  []string{"Make it count!", "Full speed ahead!"},
		keywords: []string{"spark", "fire", "charge"},
		swaps:    map[string]string{"walk": "run", "start": "launch", "good": "electric"},
	},
	"professional": {
		openers:  []string{"A note worth your attention:", "For your consideration:"},
		closers:  []string{"Thank you for your time.", "We appreciate your attention."},
		keywords: []string{"insight", "value", "clarity"},
		swaps:    map[string]string{"stuff": "material", "thing": "matter", "get": "obtain"},
	},
	"casual": {
		openers:  []string{"Hey, quick one:", "So, here's the thing:"},
		closers:  []string{"Catch you later.", "That's it, really."},
		keywords: []string{"vibe", "chill", "easy"},
		swaps:    map[string]string{"obtain": "get", "utilize": "use", "commence": "start"},
	},
	"devotional": {
		openers:  []string{"With reverence:", "In gratitude:"},
		closers:  []string{"Blessings upon your path.", "May grace guide you."},
		keywords: []string{"grace", "devotion", "blessing"},
		swaps:    map[string]string{"luck": "grace", "happy": "blessed"},
	},
	"neutral": {
		openers:  []string{},
		closers:  []string{},
		keywords: []string{},
		swaps:    map[string]string{},
	},
	"empathetic": {
		openers:  []string{"We hear you:", "You're not alone in this:"},
		closers:  []string{"Be kind to yourself.", "We're with you."},
		keywords: []string{"care", "warmth", "understanding"},
		swaps:    map[string]string{"problem": "struggle", "fail": "stumble"},
	},
}

// intensityWeight maps intensity names to rewrite aggressiveness.
var intensityWeight = map[string]float64{
	"subtle":   0.3,
	"moderate": 0.6,
	"strong":   1.0,
}
