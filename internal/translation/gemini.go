package translation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/rahulj/polypost/internal/langroute"
	"github.com/rahulj/polypost/internal/llm"
	"github.com/rahulj/polypost/internal/types"
)

// translationResponseSchema validates the LLM's JSON before we trust it.
const translationResponseSchema = `{
	"type": "object",
	"required": ["translated_text", "confidence"],
	"properties": {
		"translated_text": {"type": "string", "minLength": 1},
		"confidence": {"type": "number", "minimum": 0, "maximum": 1},
		"notes": {"type": "string"}
	}
}`

// GeminiTranslator translates through the LLM client. Responses are JSON
// and schema-validated; anything malformed is an error the caller can retry.
type GeminiTranslator struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewGeminiTranslator wraps client for translation calls at the given tier.
func NewGeminiTranslator(client llm.Client, tier llm.ModelTier) *GeminiTranslator {
	if tier == "" {
		tier = llm.TierStandard
	}
	return &GeminiTranslator{client: client, tier: tier}
}

type translationResponse struct {
	TranslatedText string  `json:"translated_text"`
	Confidence     float64 `json:"confidence"`
	Notes          string  `json:"notes,omitempty"`
}

// Translate renders text into targetLang via the LLM.
func (g *GeminiTranslator) Translate(ctx context.Context, text, targetLang string, tone types.Tone) (Translation, error) {
	lang := strings.ToLower(targetLang)
	profile, ok := langroute.Profile(lang)
	if !ok {
		return Translation{}, &types.UnsupportedLanguageError{Language: targetLang}
	}

	prompt := llm.BuildExtractionPrompt(llm.TranslationSchema(profile.Name, string(tone)), text)
	raw, err := g.client.GenerateJSON(ctx, prompt, g.tier)
	if err != nil {
		return Translation{}, fmt.Errorf("translation call failed for %s: %w", lang, err)
	}

	if err := validateTranslationJSON(raw); err != nil {
		return Translation{}, fmt.Errorf("translation response for %s: %w", lang, err)
	}

	var resp translationResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return Translation{}, fmt.Errorf("failed to parse translation response for %s: %w", lang, err)
	}

	return Translation{
		Text:       strings.TrimSpace(resp.TranslatedText),
		Confidence: resp.Confidence,
		Notes:      resp.Notes,
	}, nil
}

func validateTranslationJSON(raw string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(translationResponseSchema),
		gojsonschema.NewStringLoader(raw),
	)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if !result.Valid() {
		var msgs []string
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("invalid translation payload: %s", strings.Join(msgs, "; "))
	}
	return nil
}
