// Package llm - extractor.go provides generic LLM-based structured extraction.
package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "Translation")
	Description string        // System prompt preamble describing the task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "[]string", "number"
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// --- Predefined Schemas ---

// TranslationSchema returns the extraction schema for translating content
// into one target language while keeping the emotional register intact.
func TranslationSchema(targetLang, tone string) ExtractionSchema {
	return ExtractionSchema{
		Name: "Translation",
		Description: fmt.Sprintf(`You are an expert translator for social content.
Translate the input text into %s.
Keep the emotional tone (%s) and the core message intact.
Do not add commentary, hashtags, or formatting of your own.`, targetLang, tone),
		Fields: []SchemaField{
			{
				Name:        "translated_text",
				Type:        "\"string\"",
				Description: "The full translation in the target language's native script",
				Required:    true,
			},
			{
				Name:        "confidence",
				Type:        "number",
				Description: "Your confidence in the translation quality, 0.0 to 1.0",
				Required:    true,
			},
			{
				Name:        "notes",
				Type:        "\"string\"",
				Description: "Anything that did not translate cleanly",
				Required:    false,
			},
		},
	}
}
