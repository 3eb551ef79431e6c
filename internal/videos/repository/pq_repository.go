package repository

import (
	"context"
	"database/sql"

	"github.com/amankumarsingh77/video-splitter/internal/models"
	"github.com/amankumarsingh77/video-splitter/internal/videos"
	"github.com/amankumarsingh77/video-splitter/pkg/utils"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

type videoRepo struct {
	db *sqlx.DB
}

func NewVideoRepo(db *sqlx.DB) videos.Repository {
	return &videoRepo{
		db: db,
	}
}

func (v *videoRepo) CreateVideo(ctx context.Context, video *models.Video) (*models.Video, error) {
	created := &models.Video{}
	if err := v.db.QueryRowxContext(
		ctx,
		createVideoQuery,
		video.Title,
		video.Description,
		video.SourceURL,
		video.Duration,
		string(video.Status),
	).StructScan(created); err != nil {
		return nil, errors.Wrap(err, "videoRepo.CreateVideo.StructScan")
	}
	return created, nil
}

func (v *videoRepo) GetVideoByID(ctx context.Context, videoID int64) (*models.Video, error) {
	video := &models.Video{}
	if err := v.db.QueryRowxContext(ctx, getVideoByIDQuery, videoID).StructScan(video); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, videos.ErrNotFound
		}
		return nil, errors.Wrap(err, "videoRepo.GetVideoByID.StructScan")
	}
	return video, nil
}

func (v *videoRepo) UpdateVideo(ctx context.Context, videoID int64, input *models.VideoUpdateInput) (*models.Video, error) {
	video := &models.Video{}
	if err := v.db.GetContext(
		ctx,
		video,
		updateVideoQuery,
		input.Title,
		input.Description,
		input.Duration,
		videoID,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, videos.ErrNotFound
		}
		return nil, errors.Wrap(err, "videoRepo.UpdateVideo.GetContext")
	}
	return video, nil
}

func (v *videoRepo) SetSource(ctx context.Context, videoID int64, sourceURL string, duration *float64) (*models.Video, error) {
	video := &models.Video{}
	err := v.db.GetContext(ctx, video, setSourceQuery, sourceURL, duration, videoID)
	if err == nil {
		return video, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrap(err, "videoRepo.SetSource.GetContext")
	}
	if _, err = v.GetVideoByID(ctx, videoID); err != nil {
		return nil, err
	}
	return nil, videos.ErrSourceAlreadySet
}

func (v *videoRepo) ListVideos(ctx context.Context, filter *models.VideoFilter, pq *utils.Pagination) (*models.VideoList, error) {
	if filter == nil {
		filter = &models.VideoFilter{}
	}
	rows, err := v.db.QueryxContext(
		ctx,
		listVideosQuery,
		filter.Search,
		string(filter.Status),
		pq.GetOffset(),
		pq.GetLimit()+1,
	)
	if err != nil {
		return nil, errors.Wrap(err, "videoRepo.ListVideos.QueryxContext")
	}
	defer rows.Close()

	list := make([]*models.Video, 0, pq.GetLimit())
	for rows.Next() {
		video := &models.Video{}
		if err = rows.StructScan(video); err != nil {
			return nil, errors.Wrap(err, "videoRepo.ListVideos.StructScan")
		}
		list = append(list, video)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "videoRepo.ListVideos.rows.Err")
	}

	hasMore := len(list) > pq.GetLimit()
	if hasMore {
		list = list[:pq.GetLimit()]
	}
	return &models.VideoList{
		Videos:   list,
		Page:     pq.GetPage(),
		PageSize: pq.GetLimit(),
		HasMore:  hasMore,
	}, nil
}

func (v *videoRepo) DeleteVideo(ctx context.Context, videoID int64) error {
	res, err := v.db.ExecContext(ctx, deleteVideoQuery, videoID)
	if err != nil {
		return errors.Wrap(err, "videoRepo.DeleteVideo.ExecContext")
	}
	count, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "videoRepo.DeleteVideo.RowsAffected")
	}
	if count == 0 {
		return videos.ErrNotFound
	}
	return nil
}

func (v *videoRepo) CompareAndSetStatus(ctx context.Context, videoID int64, from []models.VideoStatus, to models.VideoStatus) (*models.Video, error) {
	if len(from) == 0 {
		return nil, videos.ErrInvalidTransition
	}
	allowed := make([]string, 0, len(from))
	for _, s := range from {
		allowed = append(allowed, string(s))
	}
	query, args, err := sqlx.In(compareAndSetStatusQuery, string(to), videoID, allowed)
	if err != nil {
		return nil, errors.Wrap(err, "videoRepo.CompareAndSetStatus.In")
	}

	video := &models.Video{}
	err = v.db.GetContext(ctx, video, v.db.Rebind(query), args...)
	if err == nil {
		return video, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrap(err, "videoRepo.CompareAndSetStatus.GetContext")
	}
	if _, err = v.GetVideoByID(ctx, videoID); err != nil {
		return nil, err
	}
	return nil, videos.ErrStatusConflict
}
