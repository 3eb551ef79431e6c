package main

import (
	"log"
	"os"

	"github.com/amankumarsingh77/video-splitter/internal/config"
	"github.com/amankumarsingh77/video-splitter/internal/server"
	"github.com/amankumarsingh77/video-splitter/pkg/db/aws"
	"github.com/amankumarsingh77/video-splitter/pkg/db/postgres"
	"github.com/amankumarsingh77/video-splitter/pkg/db/redis"
	"github.com/amankumarsingh77/video-splitter/pkg/logger"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	goredis "github.com/go-redis/redis/v8"
)

func main() {
	log.Println("Starting server")
	configFile := os.Getenv("CONFIG_PATH")
	if configFile == "" {
		configFile = "./config/config.yml"
	}
	cfgFile, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("loadConfig: %v", err)
	}
	cfg, err := config.ParseConfig(cfgFile)
	if err != nil {
		log.Fatalf("parseConfig: %v", err)
	}
	appLogger := logger.NewApiLogger(cfg)
	appLogger.InitLogger()
	appLogger.Infof("AppVersion: %s, LogLevel: %s, Mode: %s", cfg.Server.AppVersion, cfg.Logger.Level, cfg.Server.Mode)

	psqlDB, err := postgres.NewPsqlDB(cfg)
	if err != nil {
		appLogger.Fatalf("could not connect to db: %s", err)
	}
	appLogger.Infof("db connected, status: %#v", psqlDB.Stats())
	defer psqlDB.Close()

	var redisClient *goredis.Client
	if redisClient, err = redis.NewRedisClient(cfg); err != nil {
		appLogger.Warnf("could not connect to redis, split job records are disabled: %s", err)
		redisClient = nil
	} else {
		appLogger.Infof("redis connected")
		defer redisClient.Close()
	}

	var (
		s3Client      *s3.Client
		presignClient *s3.PresignClient
	)
	if cfg.Storage.Driver == "s3" {
		s3Client, presignClient, err = aws.NewAWSClient(cfg)
		if err != nil {
			appLogger.Fatalf("could not connect to s3: %s", err)
		}
	}

	s := server.NewServer(cfg, psqlDB, redisClient, s3Client, presignClient, appLogger)
	if err = s.Run(); err != nil {
		appLogger.Errorf("server stopped with error: %s", err)
	}
}
