package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amankumarsingh77/video-splitter/internal/models"
	"github.com/amankumarsingh77/video-splitter/internal/videos"
	"github.com/amankumarsingh77/video-splitter/pkg/utils"
	"github.com/jmoiron/sqlx"
)

var columns = []string{"id", "title", "description", "source_url", "duration", "status", "created_at", "updated_at"}

func newMockRepo(t *testing.T) (videos.Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewVideoRepo(sqlx.NewDb(db, "pgx")), mock
}

func videoRow(id int64, status models.VideoStatus) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(columns).AddRow(id, "clip", "desc", "http://media/uploads/a.mp4", 100.0, string(status), now, now)
}

func TestVideoRepo_CreateVideo(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO videos")).
		WithArgs("clip", "desc", "", sqlmock.AnyArg(), "Draft").
		WillReturnRows(videoRow(1, models.StatusDraft))

	created, err := repo.CreateVideo(context.Background(), &models.Video{
		Title:       "clip",
		Description: "desc",
		Status:      models.StatusDraft,
	})
	if err != nil {
		t.Fatalf("CreateVideo: %v", err)
	}
	if created.ID != 1 || created.Status != models.StatusDraft {
		t.Fatalf("unexpected video: %+v", created)
	}
	if created.Duration == nil || *created.Duration != 100 {
		t.Fatalf("expected duration 100, got %v", created.Duration)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestVideoRepo_GetVideoByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM videos WHERE id = $1")).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetVideoByID(context.Background(), 42)
	if !errors.Is(err, videos.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestVideoRepo_GetVideoByID_NullDuration(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM videos WHERE id = $1")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(7, "t", "", "", nil, "Draft", now, now))

	video, err := repo.GetVideoByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetVideoByID: %v", err)
	}
	if video.Duration != nil {
		t.Fatalf("expected unknown duration, got %v", *video.Duration)
	}
}

func TestVideoRepo_CompareAndSetStatus(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $2 AND status IN ($3, $4, $5)")).
		WithArgs("Processing", int64(1), "Uploaded", "Ready", "Failed").
		WillReturnRows(videoRow(1, models.StatusProcessing))

	video, err := repo.CompareAndSetStatus(context.Background(), 1,
		[]models.VideoStatus{models.StatusUploaded, models.StatusReady, models.StatusFailed},
		models.StatusProcessing,
	)
	if err != nil {
		t.Fatalf("CompareAndSetStatus: %v", err)
	}
	if video.Status != models.StatusProcessing {
		t.Fatalf("expected Processing, got %s", video.Status)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestVideoRepo_CompareAndSetStatus_Conflict(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE videos")).
		WillReturnRows(sqlmock.NewRows(columns))
	mock.ExpectQuery(regexp.QuoteMeta("FROM videos WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(videoRow(1, models.StatusProcessing))

	_, err := repo.CompareAndSetStatus(context.Background(), 1,
		[]models.VideoStatus{models.StatusUploaded},
		models.StatusProcessing,
	)
	if !errors.Is(err, videos.ErrStatusConflict) {
		t.Fatalf("expected ErrStatusConflict, got %v", err)
	}
}

func TestVideoRepo_SetSource_AlreadySet(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SET source_url = $1")).
		WillReturnRows(sqlmock.NewRows(columns))
	mock.ExpectQuery(regexp.QuoteMeta("FROM videos WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnRows(videoRow(3, models.StatusUploaded))

	_, err := repo.SetSource(context.Background(), 3, "http://media/uploads/b.mp4", nil)
	if !errors.Is(err, videos.ErrSourceAlreadySet) {
		t.Fatalf("expected ErrSourceAlreadySet, got %v", err)
	}
}

func TestVideoRepo_ListVideos_HasMore(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	rows := sqlmock.NewRows(columns).
		AddRow(1, "a", "", "", nil, "Draft", now, now).
		AddRow(2, "b", "", "", nil, "Draft", now, now).
		AddRow(3, "c", "", "", nil, "Draft", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY id OFFSET $3 LIMIT $4")).
		WithArgs("a", "Draft", 2, 3).
		WillReturnRows(rows)

	list, err := repo.ListVideos(context.Background(),
		&models.VideoFilter{Search: "a", Status: models.StatusDraft},
		&utils.Pagination{Page: 2, Limit: 2},
	)
	if err != nil {
		t.Fatalf("ListVideos: %v", err)
	}
	if len(list.Videos) != 2 || !list.HasMore || list.Page != 2 {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestVideoRepo_DeleteVideo_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM videos")).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.DeleteVideo(context.Background(), 9); !errors.Is(err, videos.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
