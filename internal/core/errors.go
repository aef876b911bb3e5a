package core

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceNotFound means a declared input file does not exist. It aborts
	// the whole load.
	ErrSourceNotFound = errors.New("source not found")

	// ErrSchemaDrift means a file no longer matches the alias table and
	// canonical metadata set. It aborts the whole load.
	ErrSchemaDrift = errors.New("schema drift")

	// ErrInvalidSelection means a caller asked for a party key or election
	// range outside the loaded dataset. It is never fatal.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrInvalidRange is the InvalidSelection raised for a reversed range.
	ErrInvalidRange = fmt.Errorf("%w: election range start is after its end", ErrInvalidSelection)

	// ErrUnsupportedFormat and ErrUnsupportedEncoding reject a source spec.
	ErrUnsupportedFormat   = errors.New("unsupported format")
	ErrUnsupportedEncoding = errors.New("unsupported encoding")

	// ErrBadCell means a count cell is not a non-negative integer.
	ErrBadCell = errors.New("invalid count")

	// ErrEmptySource means a file has no header row.
	ErrEmptySource = errors.New("empty file")
)

// SourceError reports a failure reading one election's source file.
type SourceError struct {
	Election ElectionID
	Path     string
	Err      error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("read election %d (%s): %v", e.Election, e.Path, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// DriftError reports a schema mismatch in one election's table.
type DriftError struct {
	Election ElectionID
	Column   string
	Reason   string
}

func (e *DriftError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("election %d: schema drift: %s", e.Election, e.Reason)
	}
	return fmt.Sprintf("election %d: schema drift in column %q: %s", e.Election, e.Column, e.Reason)
}

// Is makes errors.Is(err, ErrSchemaDrift) match every DriftError.
func (e *DriftError) Is(target error) bool {
	return target == ErrSchemaDrift
}
