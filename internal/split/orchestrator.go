package split

import (
	"context"
	"errors"
	"time"

	"github.com/amankumarsingh77/video-splitter/internal/metrics"
	"github.com/amankumarsingh77/video-splitter/internal/models"
	"github.com/amankumarsingh77/video-splitter/internal/videos"
	"github.com/amankumarsingh77/video-splitter/internal/worker"
	"github.com/amankumarsingh77/video-splitter/pkg/logger"
	"github.com/google/uuid"
)

type Scheduler interface {
	Reserve() (*worker.Reservation, error)
}

// Orchestrator accepts split requests on the caller's goroutine and runs the
// segmentation on the worker pool.
type Orchestrator struct {
	videoRepo videos.Repository
	jobRepo   videos.JobRepository
	machine   *StatusMachine
	executor  SegmentExecutor
	scheduler Scheduler
	metrics   *metrics.SplitMetrics
	logger    logger.Logger
}

func NewOrchestrator(
	videoRepo videos.Repository,
	jobRepo videos.JobRepository,
	executor SegmentExecutor,
	scheduler Scheduler,
	metrics *metrics.SplitMetrics,
	log logger.Logger,
) *Orchestrator {
	return &Orchestrator{
		videoRepo: videoRepo,
		jobRepo:   jobRepo,
		machine:   NewStatusMachine(videoRepo),
		executor:  executor,
		scheduler: scheduler,
		metrics:   metrics,
		logger:    log,
	}
}

// RequestSplit validates the request, moves the video to Processing and queues
// the job. It returns as soon as the job is queued.
func (o *Orchestrator) RequestSplit(ctx context.Context, videoID int64, request *models.SplitRequest) (*models.SplitJob, error) {
	video, err := o.videoRepo.GetVideoByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video.Status == models.StatusProcessing {
		o.metrics.JobRejected("in_flight")
		return nil, videos.ErrJobInFlight
	}

	segments, err := Validate(video.Duration, request.Segments)
	if err != nil {
		o.metrics.JobRejected("validation")
		return nil, err
	}

	reservation, err := o.scheduler.Reserve()
	if err != nil {
		o.metrics.JobRejected("saturated")
		return nil, err
	}

	if _, err = o.machine.Begin(ctx, videoID); err != nil {
		reservation.Release()
		o.metrics.JobRejected("status")
		return nil, err
	}

	job := &models.SplitJob{
		JobID:      uuid.New(),
		VideoID:    videoID,
		Status:     models.StatusProcessing,
		Segments:   segments,
		AcceptedAt: time.Now().UTC(),
	}
	o.saveRecord(ctx, &models.JobRecord{
		JobID:     job.JobID,
		VideoID:   videoID,
		Status:    models.StatusProcessing,
		Segments:  segments,
		StartedAt: job.AcceptedAt,
	})

	if err = reservation.Submit(func(jobCtx context.Context) {
		o.run(jobCtx, job)
	}); err != nil {
		o.logger.Errorf("RequestSplit - could not queue job %s for video %d: %v", job.JobID, videoID, err)
		if _, failErr := o.machine.Fail(context.Background(), videoID); failErr != nil {
			o.logger.Errorf("RequestSplit - failed to mark video %d as failed: %v", videoID, failErr)
		}
		o.metrics.JobRejected("stopped")
		return nil, err
	}

	o.metrics.JobAccepted()
	o.logger.Infof("Split job %s accepted for video %d with %d segments", job.JobID, videoID, len(segments))
	return job, nil
}

func (o *Orchestrator) run(ctx context.Context, job *models.SplitJob) {
	start := time.Now()

	video, err := o.videoRepo.GetVideoByID(ctx, job.VideoID)
	if err != nil {
		if errors.Is(err, videos.ErrNotFound) {
			o.abandon(job, start)
			return
		}
		o.logger.Errorf("Split job %s: failed to reload video %d, leaving it in Processing: %v", job.JobID, job.VideoID, err)
		o.metrics.JobFinished("store_error", time.Since(start))
		return
	}

	segments, execErr := o.executor.Execute(ctx, video.SourceURL, video.ID, job.Segments)
	completedAt := time.Now().UTC()
	record := &models.JobRecord{
		JobID:       job.JobID,
		VideoID:     job.VideoID,
		StartedAt:   job.AcceptedAt,
		CompletedAt: &completedAt,
	}

	if execErr != nil {
		o.logger.Errorf("Split job %s for video %d failed: %v", job.JobID, job.VideoID, execErr)
		if _, err = o.machine.Fail(ctx, job.VideoID); err != nil {
			if errors.Is(err, videos.ErrNotFound) {
				o.abandon(job, start)
				return
			}
			o.logger.Errorf("Split job %s: failed to mark video %d as Failed: %v", job.JobID, job.VideoID, err)
		}
		record.Status = models.StatusFailed
		record.Segments = job.Segments
		record.Error = execErr.Error()
		o.saveRecord(ctx, record)
		o.metrics.JobFinished("failed", time.Since(start))
		return
	}

	// the video is still Processing here, so no other job writes to its segment dir
	if err = o.executor.Prune(ctx, job.VideoID, segments); err != nil {
		o.logger.Warnf("Split job %s: failed to remove earlier segments of video %d: %v", job.JobID, job.VideoID, err)
	}
	if _, err = o.machine.Complete(ctx, job.VideoID); err != nil {
		if errors.Is(err, videos.ErrNotFound) {
			o.executor.Discard(segments)
			o.abandon(job, start)
			return
		}
		o.logger.Errorf("Split job %s: failed to mark video %d as Ready: %v", job.JobID, job.VideoID, err)
		o.metrics.JobFinished("store_error", time.Since(start))
		return
	}
	record.Status = models.StatusReady
	record.Segments = segments
	o.saveRecord(ctx, record)
	o.metrics.JobFinished("ready", time.Since(start))
	o.logger.Infof("Split job %s for video %d finished in %s", job.JobID, job.VideoID, time.Since(start))
}

// abandon ends a job whose video was deleted. Nothing is written back.
func (o *Orchestrator) abandon(job *models.SplitJob, start time.Time) {
	o.logger.Warnf("Split job %s abandoned: video %d no longer exists", job.JobID, job.VideoID)
	o.metrics.JobFinished("abandoned", time.Since(start))
}

// GetJob returns the last recorded split job of a video.
func (o *Orchestrator) GetJob(ctx context.Context, videoID int64) (*models.JobRecord, error) {
	if o.jobRepo == nil {
		return nil, videos.ErrJobNotFound
	}
	return o.jobRepo.GetJob(ctx, videoID)
}

func (o *Orchestrator) saveRecord(ctx context.Context, record *models.JobRecord) {
	if o.jobRepo == nil {
		return
	}
	if err := o.jobRepo.SaveJob(ctx, record); err != nil {
		o.logger.Warnf("failed to save split job record %s: %v", record.JobID, err)
	}
}
