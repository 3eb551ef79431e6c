package videos

import "github.com/labstack/echo/v4"

type Handler interface {
	CreateVideo() echo.HandlerFunc
	ListVideos() echo.HandlerFunc
	GetVideoByID() echo.HandlerFunc
	UpdateVideo() echo.HandlerFunc
	UploadVideo() echo.HandlerFunc
	DeleteVideo() echo.HandlerFunc
	SplitVideo() echo.HandlerFunc
	GetSplitJob() echo.HandlerFunc
	ListSegments() echo.HandlerFunc
}
