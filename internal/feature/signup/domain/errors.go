// Package domain defines domain-level errors for the signup feature.
package domain

import (
	"errors"
	"sort"
	"strings"
)

// FieldErrorKind classifies a single field rule violation.
type FieldErrorKind string

const (
	// MissingField indicates that a required field is empty.
	MissingField FieldErrorKind = "missing_field"
	// InvalidFormat indicates that a field is present but malformed (e.g. not an email).
	InvalidFormat FieldErrorKind = "invalid_format"
	// TooShort indicates that a field is shorter than its minimum length.
	TooShort FieldErrorKind = "too_short"
	// TooLong indicates that a field exceeds its maximum length.
	TooLong FieldErrorKind = "too_long"
	// Rejected is used for server-side rejections that carry only a message.
	Rejected FieldErrorKind = "rejected"
)

// FieldError is one violation reported for a form field.
type FieldError struct {
	Field   string
	Kind    FieldErrorKind
	Message string
}

// FieldErrors maps a field name to its violation.
// At most one error is kept per field: the first failing rule wins.
type FieldErrors map[string]FieldError

// Messages returns the field error set shown inline by the form (field -> message).
func (fe FieldErrors) Messages() map[string]string {
	out := make(map[string]string, len(fe))
	for k, v := range fe {
		out[k] = v.Message
	}
	return out
}

// Fields returns the sorted list of fields that have errors.
func (fe FieldErrors) Fields() []string {
	out := make([]string, 0, len(fe))
	for k := range fe {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ValidationError groups one or more field-level rule violations.
// It is recovered locally by the submission flow and never shown as a generic alert.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields.Fields() {
		parts = append(parts, f+": "+string(e.Fields[f].Kind))
	}
	return "validation failed (" + strings.Join(parts, ", ") + ")"
}

// SubmissionError reports that the remote call failed for a reason other than validation.
// The cause is kept for logging only; it is never rendered to the user.
type SubmissionError struct {
	Cause error
}

func (e *SubmissionError) Error() string {
	if e.Cause == nil {
		return "submission failed"
	}
	return "submission failed: " + e.Cause.Error()
}

func (e *SubmissionError) Unwrap() error { return e.Cause }

// AsValidationError reports whether err carries a ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
