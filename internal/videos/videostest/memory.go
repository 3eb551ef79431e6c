// Package videostest provides in-memory implementations of the videos
// repositories for tests.
package videostest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/amankumarsingh77/video-splitter/internal/models"
	"github.com/amankumarsingh77/video-splitter/internal/videos"
	"github.com/amankumarsingh77/video-splitter/pkg/utils"
)

type Repository struct {
	mu     sync.Mutex
	nextID int64
	videos map[int64]models.Video
}

func NewRepository() *Repository {
	return &Repository{videos: make(map[int64]models.Video)}
}

var _ videos.Repository = (*Repository)(nil)

func (r *Repository) CreateVideo(ctx context.Context, video *models.Video) (*models.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	stored := *video
	stored.ID = r.nextID
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	r.videos[stored.ID] = stored
	return clone(stored), nil
}

func (r *Repository) GetVideoByID(ctx context.Context, videoID int64) (*models.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	video, ok := r.videos[videoID]
	if !ok {
		return nil, videos.ErrNotFound
	}
	return clone(video), nil
}

func (r *Repository) UpdateVideo(ctx context.Context, videoID int64, input *models.VideoUpdateInput) (*models.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	video, ok := r.videos[videoID]
	if !ok {
		return nil, videos.ErrNotFound
	}
	if input.Title != nil {
		video.Title = *input.Title
	}
	if input.Description != nil {
		video.Description = *input.Description
	}
	if input.Duration != nil {
		d := *input.Duration
		video.Duration = &d
	}
	video.UpdatedAt = time.Now().UTC()
	r.videos[videoID] = video
	return clone(video), nil
}

func (r *Repository) SetSource(ctx context.Context, videoID int64, sourceURL string, duration *float64) (*models.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	video, ok := r.videos[videoID]
	if !ok {
		return nil, videos.ErrNotFound
	}
	if video.SourceURL != "" {
		return nil, videos.ErrSourceAlreadySet
	}
	video.SourceURL = sourceURL
	if duration != nil {
		d := *duration
		video.Duration = &d
	}
	video.UpdatedAt = time.Now().UTC()
	r.videos[videoID] = video
	return clone(video), nil
}

func (r *Repository) ListVideos(ctx context.Context, filter *models.VideoFilter, pq *utils.Pagination) (*models.VideoList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if filter == nil {
		filter = &models.VideoFilter{}
	}
	ids := make([]int64, 0, len(r.videos))
	for id, video := range r.videos {
		if filter.Search != "" && !strings.Contains(strings.ToLower(video.Title), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.Status != "" && video.Status != filter.Status {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	list := &models.VideoList{Videos: []*models.Video{}, Page: pq.GetPage(), PageSize: pq.GetLimit()}
	offset := pq.GetOffset()
	for i := offset; i < len(ids) && i < offset+pq.GetLimit(); i++ {
		list.Videos = append(list.Videos, clone(r.videos[ids[i]]))
	}
	list.HasMore = len(ids) > offset+pq.GetLimit()
	return list, nil
}

func (r *Repository) DeleteVideo(ctx context.Context, videoID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.videos[videoID]; !ok {
		return videos.ErrNotFound
	}
	delete(r.videos, videoID)
	return nil
}

func (r *Repository) CompareAndSetStatus(ctx context.Context, videoID int64, from []models.VideoStatus, to models.VideoStatus) (*models.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	video, ok := r.videos[videoID]
	if !ok {
		return nil, videos.ErrNotFound
	}
	for _, s := range from {
		if video.Status == s {
			video.Status = to
			video.UpdatedAt = time.Now().UTC()
			r.videos[videoID] = video
			return clone(video), nil
		}
	}
	return nil, videos.ErrStatusConflict
}

// Status returns the stored status, or "" for an unknown id.
func (r *Repository) Status(videoID int64) models.VideoStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.videos[videoID].Status
}

func clone(v models.Video) *models.Video {
	if v.Duration != nil {
		d := *v.Duration
		v.Duration = &d
	}
	return &v
}

type JobRepository struct {
	mu   sync.Mutex
	jobs map[int64]models.JobRecord
}

func NewJobRepository() *JobRepository {
	return &JobRepository{jobs: make(map[int64]models.JobRecord)}
}

var _ videos.JobRepository = (*JobRepository)(nil)

func (j *JobRepository) SaveJob(ctx context.Context, record *models.JobRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.jobs[record.VideoID] = *record
	return nil
}

func (j *JobRepository) GetJob(ctx context.Context, videoID int64) (*models.JobRecord, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	record, ok := j.jobs[videoID]
	if !ok {
		return nil, videos.ErrJobNotFound
	}
	return &record, nil
}
