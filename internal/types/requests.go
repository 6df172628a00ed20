package types

import (
	"github.com/go-playground/validator/v10"
)

// PublishRequest is the API request to run the pipeline for one content item.
type PublishRequest struct {
	Text      string       `json:"text" validate:"required,min=1"`
	Context   string       `json:"context,omitempty" validate:"omitempty,oneof=spiritual motivational educational cultural general"`
	Languages []string     `json:"languages,omitempty" validate:"omitempty,min=1,dive,min=2"`
	Platforms []string     `json:"platforms,omitempty" validate:"omitempty,min=1,dive,min=1"`
	Tone      string       `json:"tone,omitempty"`
	Intensity string       `json:"intensity,omitempty" validate:"omitempty,oneof=subtle moderate strong"`
	Profile   *UserProfile `json:"profile,omitempty"`
}

// AnalyzeRequest is the API request to run a strategy analysis window.
type AnalyzeRequest struct {
	WindowDays int `json:"window_days" validate:"omitempty,min=1,max=90"`
}

// Validate validates the PublishRequest using the validator.
func (r *PublishRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.Tone != "" && !Tone(r.Tone).Valid() {
		return &InvalidToneError{Tone: r.Tone}
	}
	return nil
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
