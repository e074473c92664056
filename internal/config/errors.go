package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() so that callers can
// match them with errors.Is().
var (
	// ErrNoURL is returned when the listing URL is not specified.
	ErrNoURL = errors.New("no listing url specified: use --url")

	// ErrNoIndustry is returned when the industry label is empty.
	// The industry names the output file, so it cannot be blank.
	ErrNoIndustry = errors.New("no industry specified: use --industry")

	// ErrNoSnapshot is returned when no listing snapshot path is specified.
	ErrNoSnapshot = errors.New("no listing snapshot specified: use --xml")

	// ErrInvalidFormat is returned when the output format is unknown.
	ErrInvalidFormat = errors.New("invalid output format: must be csv, json or markdown")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// Use 0 to fall back to the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidBaseURL is returned when the site origin used to build
	// detail page links is not an absolute http or https URL.
	ErrInvalidBaseURL = errors.New("invalid base url: must be an absolute http(s) url")
)
