package videos

import (
	"context"

	"github.com/amankumarsingh77/video-splitter/internal/models"
)

type JobRepository interface {
	SaveJob(ctx context.Context, record *models.JobRecord) error
	GetJob(ctx context.Context, videoID int64) (*models.JobRecord, error)
}
