// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import "errors"

// Application-level errors. These are returned as typed results, never
// masked as generic failures, so the HTTP boundary can map them to precise
// status codes. Anything else coming out of the repository is a transient
// store failure.
var (
	ErrNotFound      = errors.New("poll not found")
	ErrClosed        = errors.New("poll is closed")
	ErrInvalidOption = errors.New("option is not part of this poll")
	ErrAlreadyVoted  = errors.New("already voted on this poll")
)

// ValidationError reports rejected create input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid poll input: " + e.Reason
}
