package mods

import (
	"errors"
	"fmt"
)

// Errors that terminate a single mod's update attempt. None of them abort
// the run; a failed mod is simply not advanced this time and is retried on
// the next invocation.

var (
	// ErrBadSource indicates the mod's source is not a recognized
	// host/owner/repo repository URL
	ErrBadSource = errors.New("source is not a recognized repository URL")

	// ErrNoMatchingVersion indicates all resolution tiers were exhausted
	// with zero candidates
	ErrNoMatchingVersion = errors.New("no matching version found")

	// ErrAmbiguousVersion indicates a resolution tier produced more than
	// one candidate; the upstream metadata is malformed for this target
	ErrAmbiguousVersion = errors.New("more than one matching version found")

	// ErrNoFilename indicates the artifact response carried no usable
	// Content-Disposition filename
	ErrNoFilename = errors.New("no filename in Content-Disposition header")
)

// StatusError indicates a non-success HTTP status at any fetch point
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status code %d from %s", e.Code, e.URL)
}

// NetworkError indicates a transport failure before any response arrived
type NetworkError struct {
	URL     string
	Wrapped error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Wrapped)
}

func (e *NetworkError) Unwrap() error {
	return e.Wrapped
}

// ParseError indicates expected structure (asset filename pattern, README
// table, release listing) was not found in upstream metadata
type ParseError struct {
	Source  string // upstream being parsed, e.g. "releases", "readme"
	Message string // what failed to parse
	Wrapped error  // underlying error, may be nil
}

func (e *ParseError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("failed to parse %s %s: %v", e.Source, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("failed to parse %s %s", e.Source, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Wrapped
}
