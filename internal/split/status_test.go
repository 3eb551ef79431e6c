package split

import (
	"context"
	"errors"
	"testing"

	"github.com/amankumarsingh77/video-splitter/internal/models"
	"github.com/amankumarsingh77/video-splitter/internal/videos"
	"github.com/amankumarsingh77/video-splitter/internal/videos/videostest"
)

func TestCanTransition(t *testing.T) {
	allowed := map[[2]models.VideoStatus]bool{
		{models.StatusDraft, models.StatusUploaded}:      true,
		{models.StatusUploaded, models.StatusProcessing}: true,
		{models.StatusReady, models.StatusProcessing}:    true,
		{models.StatusFailed, models.StatusProcessing}:   true,
		{models.StatusProcessing, models.StatusReady}:    true,
		{models.StatusProcessing, models.StatusFailed}:   true,
	}
	all := []models.VideoStatus{
		models.StatusDraft,
		models.StatusUploaded,
		models.StatusProcessing,
		models.StatusReady,
		models.StatusFailed,
	}
	for _, from := range all {
		for _, to := range all {
			if got := CanTransition(from, to); got != allowed[[2]models.VideoStatus{from, to}] {
				t.Errorf("CanTransition(%s, %s) = %v", from, to, got)
			}
		}
	}
}

func TestEntryStatus(t *testing.T) {
	if EntryStatus("") != models.StatusDraft {
		t.Fatal("expected Draft without a source")
	}
	if EntryStatus("http://media/a.mp4") != models.StatusUploaded {
		t.Fatal("expected Uploaded with a source")
	}
}

func newVideo(t *testing.T, repo *videostest.Repository, status models.VideoStatus) int64 {
	t.Helper()
	video, err := repo.CreateVideo(context.Background(), &models.Video{
		Title:     "clip",
		SourceURL: "/media/uploads/clip.mp4",
		Duration:  ptr(100),
		Status:    status,
	})
	if err != nil {
		t.Fatal(err)
	}
	return video.ID
}

func TestStatusMachine_Begin(t *testing.T) {
	ctx := context.Background()
	repo := videostest.NewRepository()
	machine := NewStatusMachine(repo)

	for _, status := range []models.VideoStatus{models.StatusUploaded, models.StatusReady, models.StatusFailed} {
		id := newVideo(t, repo, status)
		video, err := machine.Begin(ctx, id)
		if err != nil {
			t.Fatalf("Begin from %s: %v", status, err)
		}
		if video.Status != models.StatusProcessing {
			t.Fatalf("expected Processing, got %s", video.Status)
		}
	}

	inFlight := newVideo(t, repo, models.StatusProcessing)
	if _, err := machine.Begin(ctx, inFlight); !errors.Is(err, videos.ErrJobInFlight) {
		t.Fatalf("expected ErrJobInFlight, got %v", err)
	}

	draft := newVideo(t, repo, models.StatusDraft)
	if _, err := machine.Begin(ctx, draft); !errors.Is(err, videos.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	if _, err := machine.Begin(ctx, 404); !errors.Is(err, videos.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStatusMachine_CompleteAndFail(t *testing.T) {
	ctx := context.Background()
	repo := videostest.NewRepository()
	machine := NewStatusMachine(repo)

	id := newVideo(t, repo, models.StatusProcessing)
	if _, err := machine.Complete(ctx, id); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if repo.Status(id) != models.StatusReady {
		t.Fatalf("expected Ready, got %s", repo.Status(id))
	}
	if _, err := machine.Fail(ctx, id); !errors.Is(err, videos.ErrInvalidTransition) {
		t.Fatalf("expected Ready -> Failed to be refused, got %v", err)
	}

	id = newVideo(t, repo, models.StatusProcessing)
	if _, err := machine.Fail(ctx, id); err != nil {
		t.Fatalf("Fail: %v", err)
	}
	if repo.Status(id) != models.StatusFailed {
		t.Fatalf("expected Failed, got %s", repo.Status(id))
	}
}

func TestStatusMachine_MarkUploaded(t *testing.T) {
	ctx := context.Background()
	repo := videostest.NewRepository()
	machine := NewStatusMachine(repo)

	id := newVideo(t, repo, models.StatusDraft)
	if _, err := machine.MarkUploaded(ctx, id); err != nil {
		t.Fatalf("MarkUploaded: %v", err)
	}
	if _, err := machine.MarkUploaded(ctx, id); !errors.Is(err, videos.ErrInvalidTransition) {
		t.Fatalf("expected second MarkUploaded to be refused, got %v", err)
	}
}
