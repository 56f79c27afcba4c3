package main

import (
	"context"
	"errors"
	"io/fs"
	"log"

	"github.com/joho/godotenv"

	"vidtube/internal/config"
	"vidtube/internal/database"
	"vidtube/internal/repository"
)

// auth_cleanup revokes every stored refresh token, forcing all users to log
// in again. Run it after rotating REFRESH_TOKEN_SECRET.
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

	revoked, err := repository.NewUserRepository(db).ClearAllRefreshTokens(context.Background())
	if err != nil {
		log.Fatalf("cleanup refresh tokens failed: %v", err)
	}

	log.Printf("auth cleanup completed: refresh_tokens=%d", revoked)
}
