package split

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/amankumarsingh77/video-splitter/internal/config"
	"github.com/amankumarsingh77/video-splitter/internal/models"
	"github.com/amankumarsingh77/video-splitter/internal/videos"
	"github.com/amankumarsingh77/video-splitter/pkg/logger"
	"github.com/google/uuid"
)

const maxToolOutput = 2048

// SegmentExecutor cuts validated segments out of a source video.
type SegmentExecutor interface {
	Execute(ctx context.Context, sourceLocation string, videoID int64, segments []models.Segment) ([]models.Segment, error)
	// Discard removes segments returned by Execute that will not be kept.
	Discard(segments []models.Segment)
	// Prune removes every stored segment of the video that is not in keep.
	Prune(ctx context.Context, videoID int64, keep []models.Segment) error
}

type Executor struct {
	runner     Runner
	blobRepo   videos.BlobRepository
	ffmpegPath string
	workDir    string
	timeout    time.Duration
	logger     logger.Logger
}

func NewExecutor(cfg *config.Config, runner Runner, blobRepo videos.BlobRepository, log logger.Logger) *Executor {
	return &Executor{
		runner:     runner,
		blobRepo:   blobRepo,
		ffmpegPath: cfg.Split.FFmpegPath,
		workDir:    cfg.Split.WorkDir,
		timeout:    cfg.Split.ToolTimeout,
		logger:     log,
	}
}

// SegmentDir is the blob directory holding the produced segments of a video.
func SegmentDir(videoID int64) string {
	return path.Join("segments", strconv.FormatInt(videoID, 10))
}

// SegmentFileName is unique per attempt: the index keeps ordering, the suffix
// keeps repeated attempts from colliding.
func SegmentFileName(index int) string {
	return fmt.Sprintf("segment_%03d_%s.mp4", index, strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}

// Execute runs the segmentation tool once per segment in order and stops at
// the first failure. On failure every artifact already published by this
// call is removed; local work files are always removed.
func (e *Executor) Execute(ctx context.Context, sourceLocation string, videoID int64, segments []models.Segment) ([]models.Segment, error) {
	if sourceLocation == "" {
		return nil, &ExecutionError{Index: firstIndex(segments), Message: "video has no source media"}
	}

	dir := filepath.Join(e.workDir, strconv.FormatInt(videoID, 10), uuid.New().String())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &ExecutionError{Index: firstIndex(segments), Message: fmt.Sprintf("create work dir: %v", err)}
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			e.logger.Warnf("Executor - failed to remove work dir %s: %v", dir, err)
		}
	}()

	published := make([]string, 0, len(segments))
	result := make([]models.Segment, 0, len(segments))
	for _, seg := range segments {
		if seg.Duration() <= 0 {
			e.discard(published)
			return nil, &ExecutionError{Index: seg.Index, Message: "invalid duration"}
		}

		// presigned inputs expire, so every cut gets a fresh one
		input, err := e.blobRepo.ResolveInput(ctx, sourceLocation)
		if err != nil {
			e.discard(published)
			return nil, &ExecutionError{Index: seg.Index, Message: fmt.Sprintf("resolve source: %v", err)}
		}

		name := SegmentFileName(seg.Index)
		localPath := filepath.Join(dir, name)
		if err = e.cut(ctx, input, seg, localPath); err != nil {
			e.discard(published)
			return nil, &ExecutionError{Index: seg.Index, Message: err.Error()}
		}

		key := path.Join(SegmentDir(videoID), name)
		url, err := e.blobRepo.Publish(ctx, key, localPath)
		if err != nil {
			e.discard(published)
			return nil, &ExecutionError{Index: seg.Index, Message: fmt.Sprintf("publish segment: %v", err)}
		}
		published = append(published, key)

		seg.Key = key
		seg.URL = url
		result = append(result, seg)
		e.logger.Debugf("Executor - video %d segment %d written to %s", videoID, seg.Index, key)
	}
	return result, nil
}

func (e *Executor) cut(ctx context.Context, input string, seg models.Segment, output string) error {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	args := []string{
		"-hide_banner",
		"-y",
		"-ss", formatSeconds(seg.Start),
		"-i", input,
		"-t", formatSeconds(seg.Duration()),
		"-c", "copy",
		"-avoid_negative_ts", "make_zero",
		output,
	}
	out, err := e.runner.Run(ctx, e.ffmpegPath, args...)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("ffmpeg timed out after %s", e.timeout)
		}
		return fmt.Errorf("ffmpeg failed: %v, output: %s", err, truncate(strings.TrimSpace(string(out))))
	}
	return nil
}

func (e *Executor) Discard(segments []models.Segment) {
	e.discard(segmentKeys(segments))
}

// Prune drops the artifacts of earlier splits once a newer one has completed.
func (e *Executor) Prune(ctx context.Context, videoID int64, keep []models.Segment) error {
	dir := SegmentDir(videoID)
	names, err := e.blobRepo.ListChildren(ctx, dir)
	if err != nil {
		return err
	}
	kept := make(map[string]struct{}, len(keep))
	for _, key := range segmentKeys(keep) {
		kept[key] = struct{}{}
	}
	var stale []string
	for _, name := range names {
		key := path.Join(dir, name)
		if _, ok := kept[key]; !ok {
			stale = append(stale, key)
		}
	}
	e.discard(stale)
	return nil
}

// discard runs on a fresh context so that cleanup still happens after a timeout.
func (e *Executor) discard(keys []string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, key := range keys {
		if err := e.blobRepo.Remove(ctx, key); err != nil {
			e.logger.Warnf("Executor - failed to remove segment %s: %v", key, err)
		}
	}
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func truncate(s string) string {
	if len(s) <= maxToolOutput {
		return s
	}
	return "..." + s[len(s)-maxToolOutput:]
}

func segmentKeys(segments []models.Segment) []string {
	keys := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg.Key != "" {
			keys = append(keys, seg.Key)
		}
	}
	return keys
}

func firstIndex(segments []models.Segment) int {
	if len(segments) == 0 {
		return 0
	}
	return segments[0].Index
}
