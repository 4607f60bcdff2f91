package cinecanvas

import "fmt"

// CanReadRejectedError is not a failure: it's the result of codec selection
// declining a file, because the extension or root element didn't match.
// Callers should treat it as "try another codec", not log it as an error.
type CanReadRejectedError struct {
	Reason string
}

func (e *CanReadRejectedError) Error() string {
	return fmt.Sprintf("cinecanvas: declined to read: %s", e.Reason)
}

// ParseError wraps a failure while loading or walking a CineCanvas document:
// the XML couldn't be decoded, or the root element didn't match after the
// codec had already committed to reading it.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cinecanvas: parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// WriteError wraps a failure serializing a document or writing it to disk.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("cinecanvas: write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

func newCanReadRejected(reason string) error {
	return &CanReadRejectedError{Reason: reason}
}

func newParseError(path string, err error) error {
	return &ParseError{Path: path, Err: err}
}

func newWriteError(path string, err error) error {
	return &WriteError{Path: path, Err: err}
}
