package data

import (
	"context"
	"fmt"
	"time"

	"github.com/lk2023060901/ai-translate-backend/internal/assets/models"
	"github.com/lk2023060901/ai-translate-backend/internal/conf"
	"github.com/lk2023060901/ai-translate-backend/internal/pkg/database"
	"github.com/lk2023060901/ai-translate-backend/internal/pkg/logger"
	"github.com/lk2023060901/ai-translate-backend/internal/pkg/minio"
	"github.com/lk2023060901/ai-translate-backend/internal/pkg/redis"
	"go.uber.org/zap"
)

type Data struct {
	DB          *database.DB
	RedisClient *redis.Client
	MinIOClient *minio.Client
	Logger      *logger.Logger
}

func NewData(config *conf.Config, log *logger.Logger) (*Data, func(), error) {
	db, err := database.New(&config.Database, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init database: %w", err)
	}

	if err := db.AutoMigrate(models.AutoMigrate); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to auto migrate: %w", err)
	}

	redisClient, err := redis.New(&config.Redis, log)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	minioClient, err := initMinIO(config, log)
	if err != nil {
		redisClient.Close()
		db.Close()
		return nil, nil, fmt.Errorf("failed to init minio: %w", err)
	}

	d := &Data{
		DB:          db,
		RedisClient: redisClient,
		MinIOClient: minioClient,
		Logger:      log,
	}

	cleanup := func() {
		log.Info("cleaning up data resources")

		if err := db.Close(); err != nil {
			log.Warn("close database failed", zap.Error(err))
		}
		redisClient.Close()
		minioClient.Close()
	}

	return d, cleanup, nil
}

func initMinIO(config *conf.Config, log *logger.Logger) (*minio.Client, error) {
	client, err := minio.NewClient(&config.MinIO, log.Named("minio").Logger)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.EnsureBucket(ctx); err != nil {
		return nil, err
	}

	return client, nil
}

// Ready 检查数据库、Redis 与 MinIO 是否可用
func (d *Data) Ready(ctx context.Context) error {
	if err := d.DB.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := d.RedisClient.Ping(ctx); err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	if err := d.MinIOClient.Ping(ctx); err != nil {
		return fmt.Errorf("minio: %w", err)
	}
	return nil
}
