package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"vidtube/internal/cache"
	"vidtube/internal/config"
	"vidtube/internal/database"
	"vidtube/internal/modules/channel"
	"vidtube/internal/modules/media"
	"vidtube/internal/repository"
	"vidtube/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("failed to load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}

	uploader, err := newUploader(cfg.Storage)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	// counts fall back to the database when redis is not configured or down
	var counts channel.CountCache
	if cfg.RedisAddr != "" {
		redisCache, err := cache.New(cfg.RedisAddr)
		if err != nil {
			log.Printf("redis unavailable, channel counts will not be cached: %v", err)
		} else {
			defer redisCache.Close()
			counts = redisCache
		}
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := server.NewRouter(server.Deps{
		Config:   cfg,
		DB:       db,
		Uploader: uploader,
		Counts:   counts,
	})

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}

// newUploader picks S3-compatible storage when an endpoint is configured and
// the local upload directory otherwise.
func newUploader(cfg config.StorageConfig) (media.Uploader, error) {
	if cfg.S3Endpoint == "" {
		if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
			return nil, err
		}
		log.Printf("storage backend=local dir=%s", cfg.UploadDir)
		return media.NewLocalStorage(cfg.UploadDir, cfg.UploadURLBase), nil
	}

	store, err := media.NewObjectStorage(media.ObjectStorageConfig{
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
		UseSSL:    cfg.S3UseSSL,
		PublicURL: cfg.S3PublicURL,
	})
	if err != nil {
		return nil, err
	}
	if err := store.EnsureBucket(context.Background()); err != nil {
		return nil, err
	}
	log.Printf("storage backend=s3 endpoint=%s bucket=%s", cfg.S3Endpoint, cfg.S3Bucket)
	return store, nil
}
