package crawler

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedEntry is returned when a listing anchor lacks its href,
	// name span or blurb span.
	ErrMalformedEntry = errors.New("malformed listing entry")

	// ErrUnexpectedStatus is matched by every *StatusError.
	ErrUnexpectedStatus = errors.New("unexpected http status")

	// ErrBodyTooLarge is matched by every *BodyTooLargeError.
	ErrBodyTooLarge = errors.New("response body exceeds limit")
)

// StatusError reports a non-2xx response for a detail page.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

// Error implements error.
func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s returned %s", ErrUnexpectedStatus, e.URL, e.Status)
}

// Is reports whether target is ErrUnexpectedStatus.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}

// BodyTooLargeError reports a detail page larger than the configured body
// limit. The page is not parsed, since a cut off document would lose the
// fields near its end.
type BodyTooLargeError struct {
	URL   string
	Limit int64
}

// Error implements error.
func (e *BodyTooLargeError) Error() string {
	return fmt.Sprintf("%s: %s is larger than %d bytes", ErrBodyTooLarge, e.URL, e.Limit)
}

// Is reports whether target is ErrBodyTooLarge.
func (e *BodyTooLargeError) Is(target error) bool {
	return target == ErrBodyTooLarge
}
