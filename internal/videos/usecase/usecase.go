package usecase

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/amankumarsingh77/video-splitter/internal/models"
	"github.com/amankumarsingh77/video-splitter/internal/split"
	"github.com/amankumarsingh77/video-splitter/internal/videos"
	"github.com/amankumarsingh77/video-splitter/pkg/logger"
	"github.com/amankumarsingh77/video-splitter/pkg/utils"
	"github.com/google/uuid"
)

var videoFilePattern = regexp.MustCompile(`(?i).+\.(mp4|mkv|avi|mov|wmv|flv|webm|m4v|mpeg|mpg|3gp|ogv|vob|ts|mxf)$`)

// Splitter accepts split jobs and reports on them.
type Splitter interface {
	RequestSplit(ctx context.Context, videoID int64, request *models.SplitRequest) (*models.SplitJob, error)
	GetJob(ctx context.Context, videoID int64) (*models.JobRecord, error)
}

type videoUC struct {
	videoRepo videos.Repository
	blobRepo  videos.BlobRepository
	machine   *split.StatusMachine
	splitter  Splitter
	logger    logger.Logger
}

func NewVideoUseCase(
	videoRepo videos.Repository,
	blobRepo videos.BlobRepository,
	splitter Splitter,
	log logger.Logger,
) videos.UseCase {
	return &videoUC{
		videoRepo: videoRepo,
		blobRepo:  blobRepo,
		machine:   split.NewStatusMachine(videoRepo),
		splitter:  splitter,
		logger:    log,
	}
}

func (v *videoUC) CreateVideo(ctx context.Context, input *models.VideoCreateInput) (*models.Video, error) {
	if err := utils.ValidateStruct(ctx, input); err != nil {
		v.logger.Debugf("CreateVideo - ValidateStruct error: %v", err)
		return nil, err
	}
	video := &models.Video{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		SourceURL:   input.SourceURL,
		Duration:    input.Duration,
		Status:      split.EntryStatus(input.SourceURL),
	}
	created, err := v.videoRepo.CreateVideo(ctx, video)
	if err != nil {
		v.logger.Errorf("CreateVideo - CreateVideo error: %v", err)
		return nil, err
	}
	v.logger.Infof("Video %d created with status %s", created.ID, created.Status)
	return created, nil
}

func (v *videoUC) GetVideo(ctx context.Context, videoID int64) (*models.Video, error) {
	return v.videoRepo.GetVideoByID(ctx, videoID)
}

func (v *videoUC) ListVideos(ctx context.Context, filter *models.VideoFilter, pagination *utils.Pagination) (*models.VideoList, error) {
	if filter != nil && filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", videos.ErrInvalidFilter, filter.Status)
	}
	return v.videoRepo.ListVideos(ctx, filter, pagination)
}

func (v *videoUC) UpdateVideo(ctx context.Context, videoID int64, input *models.VideoUpdateInput) (*models.Video, error) {
	if input.Status != nil {
		return nil, videos.ErrStatusManaged
	}
	if err := utils.ValidateStruct(ctx, input); err != nil {
		v.logger.Debugf("UpdateVideo - ValidateStruct error: %v", err)
		return nil, err
	}
	updated, err := v.videoRepo.UpdateVideo(ctx, videoID, input)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// UploadVideo stores the media of a Draft video and moves it to Uploaded.
func (v *videoUC) UploadVideo(ctx context.Context, videoID int64, input *models.UploadInput) (*models.Video, error) {
	if !videoFilePattern.MatchString(input.Name) {
		return nil, fmt.Errorf("%w: %s", videos.ErrInvalidFileFormat, input.Name)
	}
	if input.Duration != nil && *input.Duration <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", videos.ErrInvalidFileFormat)
	}

	video, err := v.videoRepo.GetVideoByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video.SourceURL != "" {
		return nil, videos.ErrSourceAlreadySet
	}

	key := path.Join("uploads", fmt.Sprint(videoID), uuid.New().String()+"_"+filepath.Base(input.Name))
	url, err := v.blobRepo.Store(ctx, key, input.File, input.Size, input.ContentType)
	if err != nil {
		v.logger.Errorf("UploadVideo - Store error: %v", err)
		return nil, err
	}

	if _, err = v.videoRepo.SetSource(ctx, videoID, url, input.Duration); err != nil {
		v.discard(key)
		return nil, err
	}
	updated, err := v.machine.MarkUploaded(ctx, videoID)
	if err != nil {
		v.logger.Errorf("UploadVideo - MarkUploaded error for video %d: %v", videoID, err)
		return nil, err
	}
	v.logger.Infof("Video %d uploaded to %s", videoID, key)
	return updated, nil
}

// DeleteVideo removes the catalog entry and, best effort, its segments.
func (v *videoUC) DeleteVideo(ctx context.Context, videoID int64) error {
	if err := v.videoRepo.DeleteVideo(ctx, videoID); err != nil {
		return err
	}
	dir := split.SegmentDir(videoID)
	names, err := v.blobRepo.ListChildren(ctx, dir)
	if err != nil {
		v.logger.Warnf("DeleteVideo - could not list segments of video %d: %v", videoID, err)
		return nil
	}
	for _, name := range names {
		if err = v.blobRepo.Remove(ctx, path.Join(dir, name)); err != nil {
			v.logger.Warnf("DeleteVideo - could not remove %s: %v", name, err)
		}
	}
	return nil
}

func (v *videoUC) RequestSplit(ctx context.Context, videoID int64, request *models.SplitRequest) (*models.SplitJob, error) {
	if request == nil {
		return nil, split.ErrNoSegments
	}
	return v.splitter.RequestSplit(ctx, videoID, request)
}

func (v *videoUC) GetSplitJob(ctx context.Context, videoID int64) (*models.JobRecord, error) {
	if _, err := v.videoRepo.GetVideoByID(ctx, videoID); err != nil {
		return nil, err
	}
	return v.splitter.GetJob(ctx, videoID)
}

func (v *videoUC) ListSegments(ctx context.Context, videoID int64) (*models.SegmentList, error) {
	if _, err := v.videoRepo.GetVideoByID(ctx, videoID); err != nil {
		return nil, err
	}
	dir := split.SegmentDir(videoID)
	names, err := v.blobRepo.ListChildren(ctx, dir)
	if err != nil {
		v.logger.Errorf("ListSegments - ListChildren error: %v", err)
		return nil, err
	}
	list := &models.SegmentList{VideoID: videoID, Segments: make([]models.SegmentFile, 0, len(names))}
	for _, name := range names {
		list.Segments = append(list.Segments, models.SegmentFile{
			Name: name,
			URL:  v.blobRepo.URL(path.Join(dir, name)),
		})
	}
	return list, nil
}

func (v *videoUC) discard(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := v.blobRepo.Remove(ctx, key); err != nil {
		v.logger.Warnf("failed to remove orphaned upload %s: %v", key, err)
	}
}
