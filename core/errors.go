package core

import (
	"errors"
	"fmt"
)

// ErrNoTables indicates that no table matched the requested class.
var ErrNoTables = errors.New("no matching tables")

// FetchError represents a failed network request or a non-success status.
type FetchError struct {
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ParseError represents malformed markup, an invalid class filter, or a page
// without matching tables.
type ParseError struct {
	Class string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing tables with class %q: %v", e.Class, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// WriteError represents a filesystem failure while writing output.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
