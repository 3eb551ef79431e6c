package videos

import (
	"context"

	"github.com/amankumarsingh77/video-splitter/internal/models"
	"github.com/amankumarsingh77/video-splitter/pkg/utils"
)

type UseCase interface {
	CreateVideo(ctx context.Context, input *models.VideoCreateInput) (*models.Video, error)
	GetVideo(ctx context.Context, videoID int64) (*models.Video, error)
	ListVideos(ctx context.Context, filter *models.VideoFilter, pagination *utils.Pagination) (*models.VideoList, error)
	UpdateVideo(ctx context.Context, videoID int64, input *models.VideoUpdateInput) (*models.Video, error)
	UploadVideo(ctx context.Context, videoID int64, input *models.UploadInput) (*models.Video, error)
	DeleteVideo(ctx context.Context, videoID int64) error

	RequestSplit(ctx context.Context, videoID int64, request *models.SplitRequest) (*models.SplitJob, error)
	GetSplitJob(ctx context.Context, videoID int64) (*models.JobRecord, error)
	ListSegments(ctx context.Context, videoID int64) (*models.SegmentList, error)
}
