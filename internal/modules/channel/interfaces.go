package channel

import (
	"context"
	"time"

	"vidtube/internal/domain"
)

type UserReader interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetPublicByID(ctx context.Context, id int64) (*domain.User, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.User, error)
	PushWatchHistory(ctx context.Context, userID, videoID int64) error
}

type VideoStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Video, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Video, error)
	IncrementViews(ctx context.Context, id int64) error
}

type SubscriptionStore interface {
	Create(ctx context.Context, subscriberID, channelID int64) error
	Delete(ctx context.Context, subscriberID, channelID int64) (bool, error)
	Exists(ctx context.Context, subscriberID, channelID int64) (bool, error)
	CountSubscribers(ctx context.Context, channelID int64) (int64, error)
	CountSubscriptions(ctx context.Context, subscriberID int64) (int64, error)
}

// CountCache is satisfied by *cache.Cache. A miss or an unavailable server
// both read as not found.
type CountCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
