package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks input rejected locally, before any network call.
	ErrValidation = errors.New("validation failed")

	ErrAnalysisFailed   = errors.New("analysis failed")
	ErrGenerationFailed = errors.New("backend generation failed")
	ErrDownloadFailed   = errors.New("download failed")

	// ErrNoArchive is returned when a download is requested before generation produced a link.
	ErrNoArchive = errors.New("no download link available")

	// ErrNoAnalysis is returned when generation is requested without an analysis summary.
	ErrNoAnalysis = errors.New("no analysis available")

	// ErrBusy is returned while another analysis or generation request is in flight.
	ErrBusy = errors.New("a request is already in progress")
)

// ValidationError describes a single rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field string, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// StatusError is a non-success HTTP response from the remote service.
type StatusError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: request failed with status code '%d'", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: request failed with status code '%d' - %s", e.Op, e.StatusCode, e.Message)
}
