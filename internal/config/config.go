package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

const (
	defaultHTTPAddr            = ":8000"
	defaultDatabaseURL         = "vidtube.db"
	defaultAccessTokenExpiry   = "1h"
	defaultRefreshTokenExpiry  = "240h"
	defaultRefreshCookieMaxAge = "168h"
	defaultCookieSameSite      = "Lax"
	defaultCookiePath          = "/"
	defaultUploadDir           = "./public/uploads"
	defaultUploadURLBase       = "/static/uploads"
	defaultAvatarURL           = "/static/default-avatar.png"
	defaultChannelCacheTTL     = "5m"
	defaultAccessTokenSecret   = "change-me-access-secret"
	defaultRefreshTokenSecret  = "change-me-refresh-secret"
)

// TokenConfig is everything the token service needs. It is built once at
// startup and passed in explicitly.
type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

type CookieConfig struct {
	Secure        bool
	SameSite      string
	Path          string
	RefreshMaxAge time.Duration
}

type StorageConfig struct {
	UploadDir     string
	UploadURLBase string
	DefaultAvatar string

	// S3-compatible object storage. Local disk is used when Endpoint is empty.
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3UseSSL    bool
	S3PublicURL string
}

type Config struct {
	AppEnv          string
	HTTPAddr        string
	DatabaseURL     string
	Tokens          TokenConfig
	Cookie          CookieConfig
	Storage         StorageConfig
	CORSOrigins     []string
	RedisAddr       string
	ChannelCacheTTL time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("NODE_ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))

	cfg.Tokens.AccessSecret = strings.TrimSpace(getEnv("ACCESS_TOKEN_SECRET", defaultAccessTokenSecret))
	cfg.Tokens.RefreshSecret = strings.TrimSpace(getEnv("REFRESH_TOKEN_SECRET", defaultRefreshTokenSecret))

	var err error
	cfg.Tokens.AccessTTL, err = parseDurationEnv("ACCESS_TOKEN_EXPIRY", defaultAccessTokenExpiry)
	if err != nil {
		return nil, err
	}
	cfg.Tokens.RefreshTTL, err = parseDurationEnv("REFRESH_TOKEN_EXPIRY", defaultRefreshTokenExpiry)
	if err != nil {
		return nil, err
	}
	cfg.Cookie.RefreshMaxAge, err = parseDurationEnv("REFRESH_COOKIE_MAX_AGE", defaultRefreshCookieMaxAge)
	if err != nil {
		return nil, err
	}
	cfg.ChannelCacheTTL, err = parseDurationEnv("CHANNEL_CACHE_TTL", defaultChannelCacheTTL)
	if err != nil {
		return nil, err
	}

	secureDefault := "false"
	if isProdLike(cfg.AppEnv) {
		secureDefault = "true"
	}
	cfg.Cookie.Secure = parseBoolEnv("COOKIE_SECURE", secureDefault)
	cfg.Cookie.SameSite = strings.TrimSpace(getEnv("COOKIE_SAMESITE", defaultCookieSameSite))
	cfg.Cookie.Path = strings.TrimSpace(getEnv("COOKIE_PATH", defaultCookiePath))

	cfg.Storage.UploadDir = strings.TrimSpace(getEnv("UPLOAD_DIR", defaultUploadDir))
	cfg.Storage.UploadURLBase = strings.TrimRight(strings.TrimSpace(getEnv("UPLOAD_URL_BASE", defaultUploadURLBase)), "/")
	cfg.Storage.DefaultAvatar = strings.TrimSpace(getEnv("DEFAULT_AVATAR_URL", defaultAvatarURL))
	cfg.Storage.S3Endpoint = strings.TrimSpace(os.Getenv("S3_ENDPOINT"))
	cfg.Storage.S3AccessKey = strings.TrimSpace(os.Getenv("S3_ACCESS_KEY"))
	cfg.Storage.S3SecretKey = strings.TrimSpace(os.Getenv("S3_SECRET_KEY"))
	cfg.Storage.S3Bucket = strings.TrimSpace(getEnv("S3_BUCKET", "vidtube"))
	cfg.Storage.S3UseSSL = parseBoolEnv("S3_USE_SSL", "false")
	cfg.Storage.S3PublicURL = strings.TrimRight(strings.TrimSpace(os.Getenv("S3_PUBLIC_URL")), "/")

	if extra := os.Getenv("CORS_ALLOWED_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}
	cfg.RedisAddr = strings.TrimSpace(os.Getenv("REDIS_ADDR"))

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	log.Printf("config loaded: env=%s addr=%s cookie_secure=%t cookie_samesite=%s s3=%t redis=%t",
		cfg.AppEnv, cfg.HTTPAddr, cfg.Cookie.Secure, cfg.Cookie.SameSite, cfg.Storage.S3Endpoint != "", cfg.RedisAddr != "")

	return cfg, nil
}

// IsProduction reports whether the app runs with production settings.
func (c *Config) IsProduction() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config) error {
	if cfg.Tokens.AccessTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_EXPIRY must be > 0")
	}
	if cfg.Tokens.RefreshTTL <= 0 {
		return fmt.Errorf("REFRESH_TOKEN_EXPIRY must be > 0")
	}
	if cfg.Cookie.RefreshMaxAge <= 0 {
		return fmt.Errorf("REFRESH_COOKIE_MAX_AGE must be > 0")
	}
	if cfg.ChannelCacheTTL <= 0 {
		return fmt.Errorf("CHANNEL_CACHE_TTL must be > 0")
	}
	if cfg.Tokens.AccessSecret == "" || cfg.Tokens.RefreshSecret == "" {
		return fmt.Errorf("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must not be empty")
	}
	if cfg.Cookie.Path == "" {
		return fmt.Errorf("COOKIE_PATH must not be empty")
	}
	sameSite := strings.ToLower(cfg.Cookie.SameSite)
	if sameSite != "lax" && sameSite != "none" && sameSite != "strict" {
		return fmt.Errorf("COOKIE_SAMESITE must be one of: Lax, None, Strict")
	}
	if sameSite == "none" && !cfg.Cookie.Secure {
		return fmt.Errorf("COOKIE_SECURE must be true when COOKIE_SAMESITE=None")
	}
	if cfg.Storage.S3Endpoint != "" && (cfg.Storage.S3AccessKey == "" || cfg.Storage.S3SecretKey == "") {
		return fmt.Errorf("S3_ACCESS_KEY and S3_SECRET_KEY are required when S3_ENDPOINT is set")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.Tokens.AccessSecret, defaultAccessTokenSecret) {
			return fmt.Errorf("in production ACCESS_TOKEN_SECRET must be set and not default")
		}
		if isEmptyOrDefault(cfg.Tokens.RefreshSecret, defaultRefreshTokenSecret) {
			return fmt.Errorf("in production REFRESH_TOKEN_SECRET must be set and not default")
		}
		if cfg.Tokens.AccessSecret == cfg.Tokens.RefreshSecret {
			return fmt.Errorf("in production ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ")
		}
		if !cfg.Cookie.Secure {
			return fmt.Errorf("in production COOKIE_SECURE must be true")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
