package types

import "fmt"

// InvalidToneError indicates a tone outside the supported set.
type InvalidToneError struct {
	Tone string
}

func (e *InvalidToneError) Error() string {
	return fmt.Sprintf("invalid tone: %q", e.Tone)
}

// UnsupportedLanguageError indicates a translation target outside the closed language set.
type UnsupportedLanguageError struct {
	Language string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("unsupported language: %q", e.Language)
}

// UnsupportedPlatformError indicates an unknown publishing platform.
type UnsupportedPlatformError struct {
	Platform string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported platform: %q", e.Platform)
}

// InputRejectedError indicates content the sanitizer refused to pass downstream.
type InputRejectedError struct {
	Flags []string
}

func (e *InputRejectedError) Error() string {
	return fmt.Sprintf("content rejected by sanitizer: %v", e.Flags)
}

// KillSwitchError indicates publishing was blocked by the kill switch.
type KillSwitchError struct{}

func (e *KillSwitchError) Error() string {
	return "publishing disabled: kill switch active"
}
