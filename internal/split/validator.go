package split

import "github.com/amankumarsingh77/video-splitter/internal/models"

// Validate checks requested ranges against the total duration and returns them
// as indexed segments in request order. Overlapping ranges and gaps are allowed.
func Validate(totalDuration *float64, requested []models.SegmentRange) ([]models.Segment, error) {
	if totalDuration == nil || *totalDuration <= 0 {
		return nil, ErrDurationUnknown
	}
	if len(requested) == 0 {
		return nil, ErrNoSegments
	}
	duration := *totalDuration

	segments := make([]models.Segment, 0, len(requested))
	for i, r := range requested {
		if r.Start < 0 {
			return nil, &ValidationError{Index: i, Reason: NegativeStart}
		}
		if r.End > duration {
			return nil, &ValidationError{Index: i, Reason: EndExceedsDuration, End: r.End, Duration: duration}
		}
		if r.Start >= r.End {
			return nil, &ValidationError{Index: i, Reason: StartNotBeforeEnd}
		}
		segments = append(segments, models.Segment{
			Index: i + 1,
			Start: r.Start,
			End:   r.End,
		})
	}
	return segments, nil
}
