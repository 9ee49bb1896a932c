package core

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError rejects a malformed request before it reaches the review
// pipeline. It is fatal to the request; nothing is generated.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid review request: " + e.Reason
}

// IsValidationError reports whether err is a request-level validation failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// TransientError wraps a backend failure that may succeed on retry, such as a
// timeout or rate limit.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return "transient generation failure: " + e.Err.Error()
}

func (e *TransientError) Unwrap() error { return e.Err }

// TerminalError wraps a backend failure that must not be retried: an
// authentication failure, a content rejection, or exhausted retries.
type TerminalError struct {
	Err error
}

func (e *TerminalError) Error() string {
	return "terminal generation failure: " + e.Err.Error()
}

func (e *TerminalError) Unwrap() error { return e.Err }

// IsTransient reports whether err may be retried.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// MalformedResponseError indicates the backend replied but one or more of the
// three required sections could not be located. Treated like a terminal
// failure for isolation purposes: the comment degrades, the batch continues.
type MalformedResponseError struct {
	Missing []string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed generation response: missing section(s) %s", strings.Join(e.Missing, ", "))
}

// IsMalformedResponse reports whether err is a section-extraction failure.
func IsMalformedResponse(err error) bool {
	var me *MalformedResponseError
	return errors.As(err, &me)
}
