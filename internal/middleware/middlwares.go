package middleware

import (
	"time"

	"github.com/amankumarsingh77/video-splitter/internal/auth"
	"github.com/amankumarsingh77/video-splitter/pkg/logger"
	"github.com/amankumarsingh77/video-splitter/pkg/utils"
	"github.com/labstack/echo/v4"
)

type MiddlewareManager struct {
	authUC  auth.UseCase
	origins []string
	logger  logger.Logger
}

// Middleware manager constructor
func NewMiddlewareManager(authUC auth.UseCase, origins []string, logger logger.Logger) *MiddlewareManager {
	return &MiddlewareManager{authUC: authUC, origins: origins, logger: logger}
}

// RequestLoggerMiddleware logs one line per request.
func (mw *MiddlewareManager) RequestLoggerMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		req := c.Request()
		res := c.Response()
		mw.logger.Infof("RequestID: %s, Method: %s, URI: %s, Status: %v, Size: %v, Time: %s",
			utils.GetRequestID(c),
			req.Method,
			req.URL.String(),
			res.Status,
			res.Size,
			time.Since(start),
		)
		return err
	}
}

func (mw *MiddlewareManager) Origins() []string {
	return mw.origins
}
