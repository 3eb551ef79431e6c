package http

import (
	"github.com/amankumarsingh77/video-splitter/internal/middleware"
	"github.com/amankumarsingh77/video-splitter/internal/videos"
	"github.com/labstack/echo/v4"
)

func MapVideoRoutes(videoGroup *echo.Group, h videos.Handler, mw *middleware.MiddlewareManager) {
	videoGroup.GET("", h.ListVideos())
	videoGroup.GET("/:id", h.GetVideoByID())
	videoGroup.GET("/:id/split", h.GetSplitJob())
	videoGroup.GET("/:id/segments", h.ListSegments())

	videoGroup.POST("", h.CreateVideo(), mw.AuthJWTMiddleware)
	videoGroup.PATCH("/:id", h.UpdateVideo(), mw.AuthJWTMiddleware)
	videoGroup.DELETE("/:id", h.DeleteVideo(), mw.AuthJWTMiddleware)
	videoGroup.POST("/:id/upload", h.UploadVideo(), mw.AuthJWTMiddleware)
	videoGroup.POST("/:id/split", h.SplitVideo(), mw.AuthJWTMiddleware)
}
