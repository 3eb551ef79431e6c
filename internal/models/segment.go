package models

import (
	"time"

	"github.com/google/uuid"
)

type SegmentRange struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type SplitRequest struct {
	Segments []SegmentRange `json:"segments"`
}

// Segment is a validated range. URL and Key stay empty until the segment has
// been cut; Key is the blob key and is never sent to clients.
type Segment struct {
	Index int     `json:"segment_id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	URL   string  `json:"url,omitempty"`
	Key   string  `json:"-"`
}

func (s Segment) Duration() float64 {
	return s.End - s.Start
}

type SplitJob struct {
	JobID      uuid.UUID   `json:"job_id"`
	VideoID    int64       `json:"parent_id"`
	Status     VideoStatus `json:"status"`
	Segments   []Segment   `json:"segments"`
	AcceptedAt time.Time   `json:"accepted_at"`
}

// JobRecord is the last known outcome of a split job, kept for polling.
type JobRecord struct {
	JobID       uuid.UUID   `json:"job_id"`
	VideoID     int64       `json:"parent_id"`
	Status      VideoStatus `json:"status"`
	Segments    []Segment   `json:"segments"`
	Error       string      `json:"error,omitempty"`
	StartedAt   time.Time   `json:"started_at"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
}

type SegmentFile struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type SegmentList struct {
	VideoID  int64         `json:"parent_id"`
	Segments []SegmentFile `json:"segments"`
}
