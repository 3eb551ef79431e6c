package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/amankumarsingh77/video-splitter/internal/models"
	"github.com/amankumarsingh77/video-splitter/internal/videos"
	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

const jobKeyPrefix = "split:job"

type jobRedisRepo struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewJobRedisRepo(redisClient *redis.Client, ttl time.Duration) videos.JobRepository {
	return &jobRedisRepo{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

func jobKey(videoID int64) string {
	return fmt.Sprintf("%s:%d", jobKeyPrefix, videoID)
}

func (j *jobRedisRepo) SaveJob(ctx context.Context, record *models.JobRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return errors.Wrap(err, "jobRedisRepo.SaveJob.Marshal")
	}
	if err = j.redisClient.Set(ctx, jobKey(record.VideoID), data, j.ttl).Err(); err != nil {
		return errors.Wrap(err, "jobRedisRepo.SaveJob.Set")
	}
	return nil
}

func (j *jobRedisRepo) GetJob(ctx context.Context, videoID int64) (*models.JobRecord, error) {
	data, err := j.redisClient.Get(ctx, jobKey(videoID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, videos.ErrJobNotFound
		}
		return nil, errors.Wrap(err, "jobRedisRepo.GetJob.Get")
	}
	record := &models.JobRecord{}
	if err = json.Unmarshal(data, record); err != nil {
		return nil, errors.Wrap(err, "jobRedisRepo.GetJob.Unmarshal")
	}
	return record, nil
}
