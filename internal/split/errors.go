package split

import (
	"errors"
	"fmt"
)

var (
	ErrDurationUnknown = errors.New("video duration is unknown; set it before requesting a split")
	ErrNoSegments      = errors.New("at least one segment is required")
)

type Reason string

const (
	NegativeStart      Reason = "negative_start"
	EndExceedsDuration Reason = "end_exceeds_duration"
	StartNotBeforeEnd  Reason = "start_not_before_end"
)

// ValidationError reports the first offending segment of a split request.
// Index is the 0-based position in the request.
type ValidationError struct {
	Index    int
	Reason   Reason
	End      float64
	Duration float64
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case NegativeStart:
		return fmt.Sprintf("Segment %d start time cannot be negative", e.Index)
	case EndExceedsDuration:
		return fmt.Sprintf("Segment %d end time (%gs) exceeds video duration (%gs)", e.Index, e.End, e.Duration)
	case StartNotBeforeEnd:
		return fmt.Sprintf("Segment %d start must be before end", e.Index)
	}
	return fmt.Sprintf("Segment %d is invalid", e.Index)
}

// ExecutionError is a segmentation failure. Index is the 1-based segment index.
type ExecutionError struct {
	Index   int
	Message string
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("segment %d: %s", e.Index, e.Message)
}
