package http

import (
	"github.com/amankumarsingh77/video-splitter/internal/auth"
	"github.com/amankumarsingh77/video-splitter/internal/middleware"
	"github.com/labstack/echo/v4"
)

func MapAuthRoutes(authGroup *echo.Group, h auth.Handler, mw *middleware.MiddlewareManager) {
	authGroup.POST("/token", h.IssueToken())
	authGroup.GET("/me", h.GetMe(), mw.AuthJWTMiddleware)
}
