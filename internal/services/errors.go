package services

import (
	"errors"
	"fmt"

	"brentstats/internal/stats"
)

var (
	// ErrInsufficientData is matched by every SegmentError
	ErrInsufficientData = stats.ErrInsufficientData

	// ErrServiceUnavailable is returned when no dataset has been loaded
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
)

// SegmentError reports a segment that cannot be summarized.
type SegmentError struct {
	Segment string
	Length  int
	Min     int
	Err     error
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("%s segment: %v", e.Segment, e.Err)
}

func (e *SegmentError) Unwrap() error { return e.Err }
