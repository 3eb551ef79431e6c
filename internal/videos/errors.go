package videos

import "errors"

var (
	ErrNotFound          = errors.New("video not found")
	ErrJobNotFound       = errors.New("no split job recorded for video")
	ErrJobInFlight       = errors.New("a split job is already in progress for this video")
	ErrInvalidTransition = errors.New("video status does not allow this operation")
	ErrSourceAlreadySet  = errors.New("video source is already set")
	ErrStatusManaged     = errors.New("status cannot be changed directly; it is managed by split jobs")
	ErrStatusConflict    = errors.New("video status changed concurrently")
	ErrInvalidFileFormat = errors.New("invalid file")
	ErrInvalidFilter     = errors.New("invalid filter")
)
