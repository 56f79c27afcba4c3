package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/joho/godotenv"

	"vidtube/internal/config"
	"vidtube/internal/database"
	"vidtube/internal/domain"
	"vidtube/internal/repository"
)

type seedUser struct {
	username string
	fullName string
}

var seedUsers = []seedUser{
	{"ana", "Ana Lima"},
	{"bob", "Bob Stone"},
	{"cat", "Cat Rivera"},
	{"dan", "Dan Okafor"},
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("failed to load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("refusing to seed a production database")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM subscriptions")
	db.Exec("DELETE FROM videos")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	videos := repository.NewVideoRepository(db)
	subs := repository.NewSubscriptionRepository(db)

	// ================== USERS ==================
	log.Println("Creating users...")
	created := make([]*domain.User, 0, len(seedUsers))
	for _, su := range seedUsers {
		u := &domain.User{
			Username: su.username,
			Email:    su.username + "@vidtube.local",
			FullName: su.fullName,
			Avatar:   cfg.Storage.DefaultAvatar,
		}
		// every demo account uses the same password
		if err := u.SetPassword("password123"); err != nil {
			log.Fatal("hash password:", err)
		}
		if err := users.Create(ctx, u); err != nil {
			log.Fatalf("create user %s: %v", su.username, err)
		}
		created = append(created, u)
	}

	// ================== VIDEOS ==================
	log.Println("Creating videos...")
	var all []*domain.Video
	for i, owner := range created {
		for n := 1; n <= 3; n++ {
			v := &domain.Video{
				OwnerID:     owner.ID,
				Title:       fmt.Sprintf("%s's video #%d", owner.FullName, n),
				Description: "Demo upload",
				VideoFile:   fmt.Sprintf("/static/demo/%s-%d.mp4", owner.Username, n),
				Thumbnail:   fmt.Sprintf("/static/demo/%s-%d.png", owner.Username, n),
				Duration:    float64(60*(i+1) + 15*n),
				IsPublished: true,
			}
			if err := videos.Create(ctx, v); err != nil {
				log.Fatalf("create video: %v", err)
			}
			all = append(all, v)
		}
	}

	// ================== SUBSCRIPTIONS ==================
	log.Println("Creating subscriptions...")
	// everyone follows ana; ana follows bob
	for _, u := range created[1:] {
		if err := subs.Create(ctx, u.ID, created[0].ID); err != nil {
			log.Fatalf("create subscription: %v", err)
		}
	}
	if err := subs.Create(ctx, created[0].ID, created[1].ID); err != nil {
		log.Fatalf("create subscription: %v", err)
	}

	// ================== WATCH HISTORY ==================
	log.Println("Recording watch history...")
	for i, u := range created {
		for _, v := range all[i : i+4] {
			if err := videos.IncrementViews(ctx, v.ID); err != nil {
				log.Fatalf("increment views: %v", err)
			}
			if err := users.PushWatchHistory(ctx, u.ID, v.ID); err != nil {
				log.Fatalf("push history: %v", err)
			}
		}
	}

	log.Printf("Seed completed: users=%d videos=%d", len(created), len(all))
}
