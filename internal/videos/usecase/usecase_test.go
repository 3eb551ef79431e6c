package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/amankumarsingh77/video-splitter/internal/models"
	"github.com/amankumarsingh77/video-splitter/internal/split"
	"github.com/amankumarsingh77/video-splitter/internal/videos"
	"github.com/amankumarsingh77/video-splitter/internal/videos/repository"
	"github.com/amankumarsingh77/video-splitter/internal/videos/videostest"
	"github.com/amankumarsingh77/video-splitter/pkg/logger"
	"github.com/amankumarsingh77/video-splitter/pkg/utils"
	"github.com/go-playground/validator/v10"
)

type stubSplitter struct {
	requests int
}

func (s *stubSplitter) RequestSplit(ctx context.Context, videoID int64, request *models.SplitRequest) (*models.SplitJob, error) {
	s.requests++
	return &models.SplitJob{VideoID: videoID, Status: models.StatusProcessing}, nil
}

func (s *stubSplitter) GetJob(ctx context.Context, videoID int64) (*models.JobRecord, error) {
	return nil, videos.ErrJobNotFound
}

func newTestUseCase(t *testing.T) (videos.UseCase, *videostest.Repository, videos.BlobRepository) {
	t.Helper()
	repo := videostest.NewRepository()
	blobs := repository.NewFSRepository(t.TempDir(), "/media")
	return NewVideoUseCase(repo, blobs, &stubSplitter{}, logger.NewNopLogger()), repo, blobs
}

func TestVideoUC_CreateVideo(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	ctx := context.Background()

	draft, err := uc.CreateVideo(ctx, &models.VideoCreateInput{Title: "  trailer  "})
	if err != nil {
		t.Fatalf("CreateVideo: %v", err)
	}
	if draft.Status != models.StatusDraft || draft.Title != "trailer" {
		t.Fatalf("unexpected video: %+v", draft)
	}

	uploaded, err := uc.CreateVideo(ctx, &models.VideoCreateInput{Title: "remote", SourceURL: "https://cdn.example.com/a.mp4"})
	if err != nil {
		t.Fatalf("CreateVideo: %v", err)
	}
	if uploaded.Status != models.StatusUploaded {
		t.Fatalf("expected Uploaded, got %s", uploaded.Status)
	}

	_, err = uc.CreateVideo(ctx, &models.VideoCreateInput{})
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
}

func TestVideoUC_UpdateVideo_RejectsStatus(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	ctx := context.Background()
	video, err := uc.CreateVideo(ctx, &models.VideoCreateInput{Title: "clip"})
	if err != nil {
		t.Fatal(err)
	}

	status := models.StatusReady
	if _, err = uc.UpdateVideo(ctx, video.ID, &models.VideoUpdateInput{Status: &status}); !errors.Is(err, videos.ErrStatusManaged) {
		t.Fatalf("expected ErrStatusManaged, got %v", err)
	}

	title := "renamed"
	duration := 42.0
	updated, err := uc.UpdateVideo(ctx, video.ID, &models.VideoUpdateInput{Title: &title, Duration: &duration})
	if err != nil {
		t.Fatalf("UpdateVideo: %v", err)
	}
	if updated.Title != "renamed" || updated.Duration == nil || *updated.Duration != 42 || updated.Status != models.StatusDraft {
		t.Fatalf("unexpected video: %+v", updated)
	}
}

func TestVideoUC_UploadVideo(t *testing.T) {
	uc, _, blobs := newTestUseCase(t)
	ctx := context.Background()
	video, err := uc.CreateVideo(ctx, &models.VideoCreateInput{Title: "clip"})
	if err != nil {
		t.Fatal(err)
	}

	duration := 30.0
	input := &models.UploadInput{File: strings.NewReader("data"), Name: "clip.mp4", Size: 4, Duration: &duration}
	uploaded, err := uc.UploadVideo(ctx, video.ID, input)
	if err != nil {
		t.Fatalf("UploadVideo: %v", err)
	}
	if uploaded.Status != models.StatusUploaded || !strings.HasPrefix(uploaded.SourceURL, "/media/uploads/") {
		t.Fatalf("unexpected video: %+v", uploaded)
	}
	if uploaded.Duration == nil || *uploaded.Duration != 30 {
		t.Fatalf("expected duration to be stored, got %v", uploaded.Duration)
	}
	if _, err = blobs.ResolveInput(ctx, uploaded.SourceURL); err != nil {
		t.Fatalf("uploaded file should be resolvable: %v", err)
	}

	again := &models.UploadInput{File: strings.NewReader("data"), Name: "clip.mp4", Size: 4}
	if _, err = uc.UploadVideo(ctx, video.ID, again); !errors.Is(err, videos.ErrSourceAlreadySet) {
		t.Fatalf("expected ErrSourceAlreadySet, got %v", err)
	}
}

func TestVideoUC_UploadVideo_RejectsUnknownFormat(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	ctx := context.Background()
	video, err := uc.CreateVideo(ctx, &models.VideoCreateInput{Title: "clip"})
	if err != nil {
		t.Fatal(err)
	}
	input := &models.UploadInput{File: strings.NewReader("data"), Name: "notes.txt", Size: 4}
	if _, err = uc.UploadVideo(ctx, video.ID, input); !errors.Is(err, videos.ErrInvalidFileFormat) {
		t.Fatalf("expected ErrInvalidFileFormat, got %v", err)
	}
}

func TestVideoUC_ListVideos(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	ctx := context.Background()
	for _, title := range []string{"alpha", "beta", "alphabet"} {
		if _, err := uc.CreateVideo(ctx, &models.VideoCreateInput{Title: title}); err != nil {
			t.Fatal(err)
		}
	}

	list, err := uc.ListVideos(ctx, &models.VideoFilter{Search: "alpha"}, &utils.Pagination{Page: 1, Limit: 1})
	if err != nil {
		t.Fatalf("ListVideos: %v", err)
	}
	if len(list.Videos) != 1 || !list.HasMore {
		t.Fatalf("unexpected page: %+v", list)
	}

	if _, err = uc.ListVideos(ctx, &models.VideoFilter{Status: "Archived"}, &utils.Pagination{}); !errors.Is(err, videos.ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", err)
	}
}

func TestVideoUC_ListSegmentsAndDelete(t *testing.T) {
	uc, _, blobs := newTestUseCase(t)
	ctx := context.Background()
	video, err := uc.CreateVideo(ctx, &models.VideoCreateInput{Title: "clip"})
	if err != nil {
		t.Fatal(err)
	}

	list, err := uc.ListSegments(ctx, video.ID)
	if err != nil {
		t.Fatalf("ListSegments: %v", err)
	}
	if len(list.Segments) != 0 {
		t.Fatalf("expected no segments, got %v", list.Segments)
	}

	key := split.SegmentDir(video.ID) + "/segment_001_abcdef01.mp4"
	if _, err = blobs.Store(ctx, key, strings.NewReader("x"), 1, "video/mp4"); err != nil {
		t.Fatal(err)
	}
	list, err = uc.ListSegments(ctx, video.ID)
	if err != nil {
		t.Fatalf("ListSegments: %v", err)
	}
	if len(list.Segments) != 1 || list.Segments[0].URL != "/media/"+key {
		t.Fatalf("unexpected listing: %+v", list.Segments)
	}

	if err = uc.DeleteVideo(ctx, video.ID); err != nil {
		t.Fatalf("DeleteVideo: %v", err)
	}
	if _, err = uc.GetVideo(ctx, video.ID); !errors.Is(err, videos.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	names, err := blobs.ListChildren(ctx, split.SegmentDir(video.ID))
	if err != nil || len(names) != 0 {
		t.Fatalf("expected segments to be removed, got %v, %v", names, err)
	}
	if _, err = uc.ListSegments(ctx, video.ID); !errors.Is(err, videos.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestVideoUC_GetSplitJob_UnknownVideo(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	if _, err := uc.GetSplitJob(context.Background(), 404); !errors.Is(err, videos.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
