package server

import (
	"errors"
	"net/http"

	authHttp "github.com/amankumarsingh77/video-splitter/internal/auth/delivery/http"
	authUsecase "github.com/amankumarsingh77/video-splitter/internal/auth/usecase"
	"github.com/amankumarsingh77/video-splitter/internal/metrics"
	"github.com/amankumarsingh77/video-splitter/internal/middleware"
	"github.com/amankumarsingh77/video-splitter/internal/split"
	"github.com/amankumarsingh77/video-splitter/internal/videos"
	videoHttp "github.com/amankumarsingh77/video-splitter/internal/videos/delivery/http"
	videoRepository "github.com/amankumarsingh77/video-splitter/internal/videos/repository"
	videoUsecase "github.com/amankumarsingh77/video-splitter/internal/videos/usecase"
	"github.com/amankumarsingh77/video-splitter/pkg/utils"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) blobRepository() (videos.BlobRepository, error) {
	switch s.cfg.Storage.Driver {
	case "s3":
		if s.s3Client == nil {
			return nil, errors.New("storage driver s3 requires an s3 client")
		}
		return videoRepository.NewAwsRepository(s.s3Client, s.preSignClient, s.cfg.S3.Bucket, s.cfg.Storage.BaseURL), nil
	default:
		return videoRepository.NewFSRepository(s.cfg.Storage.LocalDir, s.cfg.Storage.BaseURL), nil
	}
}

func (s *Server) MapHandlers(e *echo.Echo) error {
	vRepo := videoRepository.NewVideoRepo(s.db)
	blobRepo, err := s.blobRepository()
	if err != nil {
		return err
	}
	var jobRepo videos.JobRepository
	if s.redisClient != nil {
		jobRepo = videoRepository.NewJobRedisRepo(s.redisClient, s.cfg.Redis.JobTTL)
	}

	splitMetrics := metrics.NewSplitMetrics(s.registry)
	executor := split.NewExecutor(s.cfg, split.NewCommandRunner(), blobRepo, s.logger)
	orchestrator := split.NewOrchestrator(vRepo, jobRepo, executor, s.pool, splitMetrics, s.logger)

	authUC := authUsecase.NewAuthUseCase(s.cfg, s.logger)
	videoUC := videoUsecase.NewVideoUseCase(vRepo, blobRepo, orchestrator, s.logger)

	authHandlers := authHttp.NewAuthHandler(authUC, s.logger)
	videoHandlers := videoHttp.NewVideoHandler(videoUC, s.logger)

	mw := middleware.NewMiddlewareManager(authUC, s.cfg.Server.AllowOrigins, s.logger)
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: mw.Origins(),
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
		MaxAge:       300,
	}))
	e.Use(mw.RequestLoggerMiddleware)

	if s.cfg.Storage.Driver == "local" {
		e.Static("/media", s.cfg.Storage.LocalDir)
	}

	v1 := e.Group("/api/v1")
	health := v1.Group("/health")
	authGroup := v1.Group("/auth")
	videoGroup := v1.Group("/videos")

	authHttp.MapAuthRoutes(authGroup, authHandlers, mw)
	videoHttp.MapVideoRoutes(videoGroup, videoHandlers, mw)
	health.GET("", func(c echo.Context) error {
		s.logger.Infof("Health check RequestID: %s", utils.GetRequestID(c))
		return c.JSON(http.StatusOK, map[string]string{"status": "OK"})
	})
	v1.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
	return nil
}
