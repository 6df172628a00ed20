package translation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulj/polypost/internal/langroute"
	"github.com/rahulj/polypost/internal/types"
)

type failingTranslator struct {
	calls int
}

func (f *failingTranslator) Translate(context.Context, string, string, types.Tone) (Translation, error) {
	f.calls++
	return Translation{}, errors.New("collaborator down")
}

func TestTranslateAllUnsupportedLanguageFailsFast(t *testing.T) {
	ft := &failingTranslator{}
	svc := NewService(ft)

	_, err := svc.TranslateAll(context.Background(), "hello", "en", []string{"hi", "xx"}, types.ToneNeutral, nil)
	require.Error(t, err)
	var langErr *types.UnsupportedLanguageError
	require.ErrorAs(t, err, &langErr)
	assert.Equal(t, "xx", langErr.Language)
	assert.Zero(t, ft.calls, "no translation work before validation")
}

func TestTranslateAllDegradesOnExhaustedRetries(t *testing.T) {
	ft := &failingTranslator{}
	svc := NewService(ft).WithTimeout(100 * time.Millisecond)

	results, err := svc.TranslateAll(context.Background(), "Stay strong", "en", []string{"hi"}, types.ToneNeutral, nil)
	require.NoError(t, err, "collaborator failure degrades, it does not fail the batch")
	require.Len(t, results, 1)
	assert.True(t, results[0].Degraded)
	assert.Equal(t, "Stay strong", results[0].Text, "degraded result ships the original")
	assert.Equal(t, 3, ft.calls, "initial attempt plus two retries")
}

func TestTranslateOneDegradedStillPersonalized(t *testing.T) {
	ft := &failingTranslator{}
	svc := NewService(ft).WithTimeout(100 * time.Millisecond)
	profile := &types.UserProfile{AvoidEmojis: true}

	res := svc.TranslateOne(context.Background(), "Stay strong 🙏", "en", "hi", types.ToneNeutral, profile)
	assert.True(t, res.Degraded)
	assert.True(t, res.Personalized, "profile preferences apply to the degraded text too")
	assert.NotContains(t, res.Text, "🙏")
}

func TestTranslateAllPassesThroughSourceLanguage(t *testing.T) {
	svc := NewService(SimTranslator{})

	results, err := svc.TranslateAll(context.Background(), "Stay strong", "en", []string{"en"}, types.ToneNeutral, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Stay strong", results[0].Text)
	assert.False(t, results[0].Degraded)
}

func TestSimTranslatorDeterministic(t *testing.T) {
	sim := SimTranslator{}
	a, err := sim.Translate(context.Background(), "the storm will pass", "hi", types.ToneNeutral)
	require.NoError(t, err)
	b, err := sim.Translate(context.Background(), "the storm will pass", "hi", types.ToneNeutral)
	require.NoError(t, err)
	assert.Equal(t, a.Text, b.Text)
	assert.NotEqual(t, "the storm will pass", a.Text)
}

func TestSimTranslatorUnsupported(t *testing.T) {
	_, err := SimTranslator{}.Translate(context.Background(), "hello", "tlh", types.ToneNeutral)
	var langErr *types.UnsupportedLanguageError
	require.ErrorAs(t, err, &langErr)
}

func TestSimTranslatorRoundTripsThroughRouter(t *testing.T) {
	sim := SimTranslator{}
	router := langroute.New()
	text := "Stay strong the storm will pass and hope will guide you"

	for _, lang := range langroute.Supported() {
		t.Run(lang, func(t *testing.T) {
			tr, err := sim.Translate(context.Background(), text, lang, types.ToneNeutral)
			require.NoError(t, err)
			d := router.Route(tr.Text)
			assert.Equal(t, lang, d.Language, "translated text should route back to its language (got %q, conf %f)", tr.Text, d.Confidence)
		})
	}
}

func TestPersonalizeFormal(t *testing.T) {
	profile := &types.UserProfile{Formality: "formal"}
	out, changed := Personalize("Hey, you can't give up, it's your moment", "en", profile)
	assert.True(t, changed)
	assert.Contains(t, out, "cannot")
	assert.Contains(t, out, "it is")
	assert.NotContains(t, out, "can't")
}

func TestPersonalizeCasual(t *testing.T) {
	profile := &types.UserProfile{Formality: "casual"}
	out, changed := Personalize("You cannot stop now. We will not quit", "en", profile)
	assert.True(t, changed)
	assert.Contains(t, out, "can't")
	assert.Contains(t, out, "won't")
}

func TestPersonalizeStripsEmojis(t *testing.T) {
	profile := &types.UserProfile{AvoidEmojis: true}
	out, changed := Personalize("Keep going \U0001F4AA you got this ✨", "hi", profile)
	assert.True(t, changed)
	assert.NotContains(t, out, "\U0001F4AA")
	assert.NotContains(t, out, "✨")
	assert.Contains(t, out, "Keep going")
}

func TestPersonalizeNoOpForNonEnglishFormality(t *testing.T) {
	profile := &types.UserProfile{Formality: "formal"}
	out, changed := Personalize("यह ठीक है", "hi", profile)
	assert.False(t, changed)
	assert.Equal(t, "यह ठीक है", out)
}
