package http

import (
	"net/http"
	"strconv"

	"github.com/amankumarsingh77/video-splitter/internal/models"
	"github.com/amankumarsingh77/video-splitter/internal/videos"
	"github.com/amankumarsingh77/video-splitter/pkg/httpErrors"
	"github.com/amankumarsingh77/video-splitter/pkg/logger"
	"github.com/amankumarsingh77/video-splitter/pkg/utils"
	"github.com/labstack/echo/v4"
)

type videoHandler struct {
	videoUC videos.UseCase
	logger  logger.Logger
}

func NewVideoHandler(videoUC videos.UseCase, log logger.Logger) videos.Handler {
	return &videoHandler{
		videoUC: videoUC,
		logger:  log,
	}
}

func videoIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid video id")
	}
	return id, nil
}

func (h *videoHandler) errorResponse(c echo.Context, err error) error {
	if httpErrors.Status(err) == http.StatusInternalServerError {
		h.logger.Errorf("RequestID: %s, IPAddress: %s, Error: %v", utils.GetRequestID(c), utils.GetIPAddress(c), err)
	}
	return httpErrors.ErrorResponse(c, err)
}

func (h *videoHandler) CreateVideo() echo.HandlerFunc {
	return func(c echo.Context) error {
		input := &models.VideoCreateInput{}
		if err := c.Bind(input); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		}
		video, err := h.videoUC.CreateVideo(c.Request().Context(), input)
		if err != nil {
			return h.errorResponse(c, err)
		}
		return c.JSON(http.StatusCreated, video)
	}
}

func (h *videoHandler) ListVideos() echo.HandlerFunc {
	return func(c echo.Context) error {
		pagination, err := utils.GetPaginationFromCtx(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		filter := &models.VideoFilter{
			Search: c.QueryParam("search"),
			Status: models.VideoStatus(c.QueryParam("status")),
		}
		list, err := h.videoUC.ListVideos(c.Request().Context(), filter, pagination)
		if err != nil {
			return h.errorResponse(c, err)
		}
		return c.JSON(http.StatusOK, list)
	}
}

func (h *videoHandler) GetVideoByID() echo.HandlerFunc {
	return func(c echo.Context) error {
		videoID, err := videoIDParam(c)
		if err != nil {
			return h.errorResponse(c, err)
		}
		video, err := h.videoUC.GetVideo(c.Request().Context(), videoID)
		if err != nil {
			return h.errorResponse(c, err)
		}
		return c.JSON(http.StatusOK, video)
	}
}

func (h *videoHandler) UpdateVideo() echo.HandlerFunc {
	return func(c echo.Context) error {
		videoID, err := videoIDParam(c)
		if err != nil {
			return h.errorResponse(c, err)
		}
		input := &models.VideoUpdateInput{}
		if err = c.Bind(input); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		}
		video, err := h.videoUC.UpdateVideo(c.Request().Context(), videoID, input)
		if err != nil {
			return h.errorResponse(c, err)
		}
		return c.JSON(http.StatusOK, video)
	}
}

func (h *videoHandler) UploadVideo() echo.HandlerFunc {
	return func(c echo.Context) error {
		videoID, err := videoIDParam(c)
		if err != nil {
			return h.errorResponse(c, err)
		}
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "file is required"})
		}
		input := &models.UploadInput{
			Name:        fileHeader.Filename,
			ContentType: fileHeader.Header.Get(echo.HeaderContentType),
			Size:        fileHeader.Size,
		}
		if raw := c.FormValue("duration"); raw != "" {
			duration, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid duration"})
			}
			input.Duration = &duration
		}

		file, err := fileHeader.Open()
		if err != nil {
			return h.errorResponse(c, err)
		}
		defer file.Close()
		input.File = file

		video, err := h.videoUC.UploadVideo(c.Request().Context(), videoID, input)
		if err != nil {
			return h.errorResponse(c, err)
		}
		return c.JSON(http.StatusOK, video)
	}
}

func (h *videoHandler) DeleteVideo() echo.HandlerFunc {
	return func(c echo.Context) error {
		videoID, err := videoIDParam(c)
		if err != nil {
			return h.errorResponse(c, err)
		}
		if err = h.videoUC.DeleteVideo(c.Request().Context(), videoID); err != nil {
			return h.errorResponse(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "Video deleted successfully"})
	}
}

func (h *videoHandler) SplitVideo() echo.HandlerFunc {
	return func(c echo.Context) error {
		videoID, err := videoIDParam(c)
		if err != nil {
			return h.errorResponse(c, err)
		}
		request := &models.SplitRequest{}
		if err = c.Bind(request); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		}
		job, err := h.videoUC.RequestSplit(c.Request().Context(), videoID, request)
		if err != nil {
			return h.errorResponse(c, err)
		}
		return c.JSON(http.StatusAccepted, job)
	}
}

func (h *videoHandler) GetSplitJob() echo.HandlerFunc {
	return func(c echo.Context) error {
		videoID, err := videoIDParam(c)
		if err != nil {
			return h.errorResponse(c, err)
		}
		record, err := h.videoUC.GetSplitJob(c.Request().Context(), videoID)
		if err != nil {
			return h.errorResponse(c, err)
		}
		return c.JSON(http.StatusOK, record)
	}
}

func (h *videoHandler) ListSegments() echo.HandlerFunc {
	return func(c echo.Context) error {
		videoID, err := videoIDParam(c)
		if err != nil {
			return h.errorResponse(c, err)
		}
		list, err := h.videoUC.ListSegments(c.Request().Context(), videoID)
		if err != nil {
			return h.errorResponse(c, err)
		}
		return c.JSON(http.StatusOK, list)
	}
}
