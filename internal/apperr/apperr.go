// Package apperr holds the error values surfaced to API callers.
// Callers match them with errors.Is / errors.As.
package apperr

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrNotFound          = errors.New("Job not found")
	ErrResumeNotFound    = errors.New("Job or Resume not found")
	ErrUnsupportedFormat = errors.New("Unsupported file format. Only PDF and DOCX are supported.")
	ErrUploadMissing     = errors.New("No file provided")
	ErrAIDisabled        = errors.New("resume review is disabled: no AI key configured")
)

type ValidationError struct {
	Fields []string
	Reason string
}

func NewValidationError(reason string, fields ...string) *ValidationError {
	return &ValidationError{Fields: fields, Reason: reason}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Reason, strings.Join(e.Fields, ", "))
}

// UpstreamError is a non-200 answer from a third-party API.
type UpstreamError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s API returned status %d: %s", e.Service, e.StatusCode, e.Body)
}

// ProcessingError is a failure to read a stored resume.
type ProcessingError struct {
	Err error
}

func (e *ProcessingError) Error() string {
	return "Error processing resume: " + e.Err.Error()
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}
