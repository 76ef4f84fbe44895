package dataprocessing

import "errors"

var (
	// ErrMissingColumn is returned when a required column is absent
	ErrMissingColumn = errors.New("missing required column")
	// ErrNoValidRows is returned when every price row was malformed
	ErrNoValidRows = errors.New("no valid price rows")
	// ErrUnsupportedFormat is returned for input files that are neither CSV nor XLSX
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrNoEvents is returned when no events strategy produced a dataset
	ErrNoEvents = errors.New("events dataset could not be parsed")
)
