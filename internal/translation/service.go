package translation

import (
	"context"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/rahulj/polypost/internal/langroute"
	"github.com/rahulj/polypost/internal/types"
)

const (
	defaultTimeout = 20 * time.Second
	maxRetries     = 2
)

// Service drives translation across the requested languages with timeouts,
// bounded retries, and degradation instead of failure when a collaborator
// stays down.
type Service struct {
	translator Translator
	timeout    time.Duration
}

// NewService builds a Service around translator.
func NewService(translator Translator) *Service {
	return &Service{translator: translator, timeout: defaultTimeout}
}

// WithTimeout overrides the per-attempt timeout.
func (s *Service) WithTimeout(d time.Duration) *Service {
	s.timeout = d
	return s
}

// ValidateTargets checks every requested language against the supported set
// before any translation work starts.
func (s *Service) ValidateTargets(langs []string) error {
	for _, lang := range langs {
		if !langroute.IsSupported(lang) {
			return &types.UnsupportedLanguageError{Language: lang}
		}
	}
	return nil
}

// TranslateOne renders text into a single target language. The source
// language passes through untouched; collaborator exhaustion degrades to the
// untranslated original instead of returning an error.
func (s *Service) TranslateOne(ctx context.Context, text, sourceLang, lang string, tone types.Tone, profile *types.UserProfile) Result {
	lang = strings.ToLower(lang)

	if lang == strings.ToLower(sourceLang) {
		return s.personalize(Result{
			Language:   lang,
			Text:       text,
			Confidence: 1,
		}, profile)
	}

	tr, err := s.translateWithRetry(ctx, text, lang, tone)
	if err != nil {
		// Collaborator exhausted: ship the original, flagged. Profile
		// preferences still apply to what actually goes out.
		return s.personalize(Result{
			Language: lang,
			Text:     text,
			Degraded: true,
		}, profile)
	}
	return s.personalize(Result{
		Language:   lang,
		Text:       tr.Text,
		Confidence: tr.Confidence,
	}, profile)
}

// TranslateAll renders text into every language in langs. The whole request
// fails fast if any target is outside the supported set; per-language
// collaborator failures degrade that language to the untranslated original
// instead of failing the batch.
//
// sourceLang marks the language text is already in; that target is passed
// through untouched.
func (s *Service) TranslateAll(ctx context.Context, text, sourceLang string, langs []string, tone types.Tone, profile *types.UserProfile) ([]Result, error) {
	if err := s.ValidateTargets(langs); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(langs))
	for _, lang := range langs {
		results = append(results, s.TranslateOne(ctx, text, sourceLang, lang, tone, profile))
	}
	return results, nil
}

// translateWithRetry wraps one target language in a per-attempt timeout and
// an exponential backoff capped at maxRetries additional attempts.
func (s *Service) translateWithRetry(ctx context.Context, text, lang string, tone types.Tone) (Translation, error) {
	var out Translation
	op := func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		tr, err := s.translator.Translate(attemptCtx, text, lang, tone)
		if err != nil {
			return err
		}
		out = tr
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return Translation{}, err
	}
	return out, nil
}

func (s *Service) personalize(res Result, profile *types.UserProfile) Result {
	if profile == nil {
		return res
	}
	adjusted, changed := Personalize(res.Text, res.Language, profile)
	res.Text = adjusted
	res.Personalized = changed
	return res
}
