// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package hfwget

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors returned by the library.
var (
	// ErrInvalidRepo is returned when the repository ID is not in "owner/name" format.
	ErrInvalidRepo = errors.New("invalid repository ID: expected owner/name format")

	// ErrMissingRepo is returned when no repository is specified.
	ErrMissingRepo = errors.New("missing repository ID")

	// ErrUnauthorized is returned when authentication is required but not provided.
	ErrUnauthorized = errors.New("unauthorized: this repository requires authentication")

	// ErrNotFound is returned when the repository or revision does not exist.
	ErrNotFound = errors.New("repository or revision not found")

	// ErrRateLimited is returned when the API rate limit is exceeded.
	ErrRateLimited = errors.New("rate limited: too many requests")

	// ErrInvalidMode is returned for a mode other than download or dump.
	ErrInvalidMode = errors.New("invalid mode: expected download or dump")
)

// APIError represents an error from the Hub tree API.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error %d (%s): %s", e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Status)
}

// Is implements errors.Is for common error comparisons.
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case 401, 403:
		return target == ErrUnauthorized
	case 404:
		return target == ErrNotFound
	case 429:
		return target == ErrRateLimited
	default:
		return false
	}
}

// CommandError wraps the failure of a single external command.
type CommandError struct {
	Index   int
	Command string
	// Output holds the tail of the captured output in quiet mode.
	Output string
	Err    error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("command %d (%s): %v", e.Index, e.Command, e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\n" + out
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExecuteError reports every failed command of a download run.
// It is returned only after all dispatched commands were observed.
type ExecuteError struct {
	Failed int
	Total  int
	Errs   []error
}

func (e *ExecuteError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d of %d commands failed", e.Failed, e.Total)
	for _, err := range e.Errs {
		b.WriteString("\n  ")
		b.WriteString(err.Error())
	}
	return b.String()
}

func (e *ExecuteError) Unwrap() []error {
	return e.Errs
}
