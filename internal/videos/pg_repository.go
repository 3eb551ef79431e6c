package videos

import (
	"context"

	"github.com/amankumarsingh77/video-splitter/internal/models"
	"github.com/amankumarsingh77/video-splitter/pkg/utils"
)

// Repository is the catalog of video assets.
type Repository interface {
	CreateVideo(ctx context.Context, video *models.Video) (*models.Video, error)
	GetVideoByID(ctx context.Context, videoID int64) (*models.Video, error)
	UpdateVideo(ctx context.Context, videoID int64, input *models.VideoUpdateInput) (*models.Video, error)
	SetSource(ctx context.Context, videoID int64, sourceURL string, duration *float64) (*models.Video, error)
	ListVideos(ctx context.Context, filter *models.VideoFilter, pq *utils.Pagination) (*models.VideoList, error)
	DeleteVideo(ctx context.Context, videoID int64) error
	// CompareAndSetStatus moves the video to `to` only if its current status is one of `from`.
	// It returns ErrStatusConflict when the row exists in another status.
	CompareAndSetStatus(ctx context.Context, videoID int64, from []models.VideoStatus, to models.VideoStatus) (*models.Video, error)
}
