package split

import (
	"context"
	"errors"

	"github.com/amankumarsingh77/video-splitter/internal/models"
	"github.com/amankumarsingh77/video-splitter/internal/videos"
)

var transitions = map[models.VideoStatus][]models.VideoStatus{
	models.StatusDraft:      {models.StatusUploaded},
	models.StatusUploaded:   {models.StatusProcessing},
	models.StatusReady:      {models.StatusProcessing},
	models.StatusFailed:     {models.StatusProcessing},
	models.StatusProcessing: {models.StatusReady, models.StatusFailed},
}

func CanTransition(from, to models.VideoStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// EntryStatus is the status a video is created with.
func EntryStatus(sourceURL string) models.VideoStatus {
	if sourceURL == "" {
		return models.StatusDraft
	}
	return models.StatusUploaded
}

func sourcesOf(to models.VideoStatus) []models.VideoStatus {
	var from []models.VideoStatus
	for _, s := range []models.VideoStatus{
		models.StatusDraft,
		models.StatusUploaded,
		models.StatusProcessing,
		models.StatusReady,
		models.StatusFailed,
	} {
		if CanTransition(s, to) {
			from = append(from, s)
		}
	}
	return from
}

// StatusMachine is the only writer of Video.Status after creation. Every
// transition is a compare-and-set against the catalog.
type StatusMachine struct {
	repo videos.Repository
}

func NewStatusMachine(repo videos.Repository) *StatusMachine {
	return &StatusMachine{repo: repo}
}

// Begin moves an Uploaded, Ready or Failed video to Processing.
func (m *StatusMachine) Begin(ctx context.Context, videoID int64) (*models.Video, error) {
	return m.transition(ctx, videoID, models.StatusProcessing)
}

func (m *StatusMachine) Complete(ctx context.Context, videoID int64) (*models.Video, error) {
	return m.transition(ctx, videoID, models.StatusReady)
}

func (m *StatusMachine) Fail(ctx context.Context, videoID int64) (*models.Video, error) {
	return m.transition(ctx, videoID, models.StatusFailed)
}

// MarkUploaded moves a Draft video to Uploaded once its media is stored.
func (m *StatusMachine) MarkUploaded(ctx context.Context, videoID int64) (*models.Video, error) {
	return m.transition(ctx, videoID, models.StatusUploaded)
}

func (m *StatusMachine) transition(ctx context.Context, videoID int64, to models.VideoStatus) (*models.Video, error) {
	video, err := m.repo.CompareAndSetStatus(ctx, videoID, sourcesOf(to), to)
	if err == nil {
		return video, nil
	}
	if !errors.Is(err, videos.ErrStatusConflict) {
		return nil, err
	}
	current, getErr := m.repo.GetVideoByID(ctx, videoID)
	if getErr != nil {
		return nil, getErr
	}
	if current.Status == models.StatusProcessing && to == models.StatusProcessing {
		return nil, videos.ErrJobInFlight
	}
	return nil, videos.ErrInvalidTransition
}
