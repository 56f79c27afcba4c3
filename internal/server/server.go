// Package server assembles the HTTP application from its dependencies.
package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"vidtube/internal/config"
	"vidtube/internal/middleware"
	"vidtube/internal/modules/auth"
	"vidtube/internal/modules/channel"
	"vidtube/internal/modules/media"
	"vidtube/internal/repository"
)

type Deps struct {
	Config   *config.Config
	DB       *gorm.DB
	Uploader media.Uploader
	// Counts is optional; nil disables the channel count cache.
	Counts channel.CountCache
}

func NewRouter(d Deps) *gin.Engine {
	cfg := d.Config

	userRepo := repository.NewUserRepository(d.DB)
	videoRepo := repository.NewVideoRepository(d.DB)
	subscriptionRepo := repository.NewSubscriptionRepository(d.DB)

	tokens := auth.NewTokenService(userRepo, cfg.Tokens)
	authService := auth.NewService(userRepo, tokens, d.Uploader, cfg.Storage.DefaultAvatar)
	authHandler := auth.NewHandler(authService, cfg.Cookie)

	channelService := channel.NewService(userRepo, videoRepo, subscriptionRepo, d.Counts, cfg.ChannelCacheTTL)
	channelHandler := channel.NewHandler(channelService)

	r := gin.New()
	if gin.Mode() != gin.TestMode {
		r.Use(gin.Logger())
	}
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.MaxMultipartMemory = media.MaxFileSize

	// local uploads are served by the app itself
	if cfg.Storage.S3Endpoint == "" && strings.HasPrefix(cfg.Storage.UploadURLBase, "/") {
		r.Static(cfg.Storage.UploadURLBase, cfg.Storage.UploadDir)
	}

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := d.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(tokens, userRepo))
		{
			authHandler.RegisterProtectedRoutes(protected)
			channelHandler.RegisterRoutes(protected)
		}
	}

	return r
}
