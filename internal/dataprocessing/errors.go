package dataprocessing

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceUnavailable marks an input file that cannot be located or opened.
	// It halts the chart that depends on the file and nothing else.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrMissingColumn marks an input file that lacks a required column
	ErrMissingColumn = errors.New("missing column")
)

// SourceError reports which input could not be opened
type SourceError struct {
	Source string
	Path   string
	Err    error
}

// Error implements the error interface
func (e *SourceError) Error() string {
	return fmt.Sprintf("%s source unavailable at %s: %v", e.Source, e.Path, e.Err)
}

// Unwrap exposes the underlying file-system error
func (e *SourceError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrSourceUnavailable) match any SourceError
func (e *SourceError) Is(target error) bool {
	return target == ErrSourceUnavailable
}

// ColumnError reports a required column absent from a source header
type ColumnError struct {
	Source string
	Path   string
	Column string
}

// Error implements the error interface
func (e *ColumnError) Error() string {
	return fmt.Sprintf("%v: %s source %s has no %q column", ErrMissingColumn, e.Source, e.Path, e.Column)
}

// Is makes errors.Is(err, ErrMissingColumn) match any ColumnError
func (e *ColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}
