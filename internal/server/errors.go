// Package server provides the HTTP REST API for the publishing pipeline.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/rahulj/polypost/internal/types"
)

// ErrRunNotFound indicates the requested pipeline run does not exist
type ErrRunNotFound struct {
	RunID uuid.UUID
}

func (e *ErrRunNotFound) Error() string {
	return fmt.Sprintf("run not found: %s", e.RunID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		invalidTone *types.InvalidToneError
		badLanguage *types.UnsupportedLanguageError
		badPlatform *types.UnsupportedPlatformError
		rejected    *types.InputRejectedError
		killSwitch  *types.KillSwitchError
		notFound    *ErrRunNotFound
		validation  *ErrValidation
	)

	switch {
	case errors.As(err, &invalidTone), errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &badLanguage), errors.As(err, &badPlatform), errors.As(err, &rejected):
		return http.StatusUnprocessableEntity
	case errors.As(err, &killSwitch):
		return http.StatusServiceUnavailable
	case errors.As(err, &notFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
