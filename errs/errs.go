// Package errs defines the failure kinds shared by the detection packages.
//
// Every package-level sentinel in this module wraps exactly one of these
// kinds, so callers can match either the specific condition or its kind:
//
//	if errors.Is(err, errs.ErrInvalidArgument) { ... }
package errs

import "errors"

// Failure kinds.
var (
	// ErrInvalidArgument reports a caller-supplied value outside the accepted
	// domain (unknown sign, mismatched lengths, malformed adjacency, ...).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIOFailure reports an open or read failure in a collaborator.
	ErrIOFailure = errors.New("io failure")

	// ErrDataShapeMismatch reports input whose layout does not match the
	// declared shape, such as a raw stream with a truncated trailing sample.
	ErrDataShapeMismatch = errors.New("data shape mismatch")
)
