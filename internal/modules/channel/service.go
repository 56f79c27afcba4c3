package channel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vidtube/internal/domain"
	"vidtube/internal/repository"
)

type Service struct {
	users    UserReader
	videos   VideoStore
	subs     SubscriptionStore
	cache    CountCache
	cacheTTL time.Duration
}

// NewService builds the channel service. cache may be nil, in which case the
// counts are always read from the database.
func NewService(users UserReader, videos VideoStore, subs SubscriptionStore, cache CountCache, cacheTTL time.Duration) *Service {
	return &Service{
		users:    users,
		videos:   videos,
		subs:     subs,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// ChannelProfile returns the public profile of username as seen by viewerID.
func (s *Service) ChannelProfile(ctx context.Context, viewerID int64, username string) (*ProfileResponse, error) {
	username = domain.NormalizeHandle(username)
	if username == "" {
		return nil, ErrUsernameRequired
	}

	ch, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, ErrChannelFailed.Because(err)
	}

	subscribers, subscribedTo, err := s.counts(ctx, ch.ID)
	if err != nil {
		return nil, ErrChannelFailed.Because(err)
	}

	isSubscribed := false
	if viewerID != 0 && viewerID != ch.ID {
		isSubscribed, err = s.subs.Exists(ctx, viewerID, ch.ID)
		if err != nil {
			return nil, ErrChannelFailed.Because(err)
		}
	}

	return &ProfileResponse{
		ID:                        ch.ID,
		Username:                  ch.Username,
		FullName:                  ch.FullName,
		Email:                     ch.Email,
		Avatar:                    ch.Avatar,
		CoverImage:                ch.CoverImage,
		SubscribersCount:          subscribers,
		ChannelsSubscribedToCount: subscribedTo,
		IsSubscribed:              isSubscribed,
	}, nil
}

func countsKey(userID int64) string {
	return fmt.Sprintf("channel:%d:counts", userID)
}

// counts returns how many users subscribe to userID and how many channels
// userID subscribes to. Cached as "subscribers:subscribedTo".
func (s *Service) counts(ctx context.Context, userID int64) (int64, int64, error) {
	key := countsKey(userID)
	if s.cache != nil {
		if raw, ok := s.cache.Get(ctx, key); ok {
			var subscribers, subscribedTo int64
			if _, err := fmt.Sscanf(raw, "%d:%d", &subscribers, &subscribedTo); err == nil {
				return subscribers, subscribedTo, nil
			}
		}
	}

	subscribers, err := s.subs.CountSubscribers(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	subscribedTo, err := s.subs.CountSubscriptions(ctx, userID)
	if err != nil {
		return 0, 0, err
	}

	if s.cache != nil {
		// cache write failures are logged by the cache and otherwise ignored
		_ = s.cache.Set(ctx, key, fmt.Sprintf("%d:%d", subscribers, subscribedTo), s.cacheTTL)
	}
	return subscribers, subscribedTo, nil
}

func (s *Service) invalidate(ctx context.Context, userIDs ...int64) {
	if s.cache == nil {
		return
	}
	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, countsKey(id))
	}
	_ = s.cache.Delete(ctx, keys...)
}

// ToggleSubscription subscribes subscriberID to channelID, or unsubscribes if
// already subscribed. It reports the resulting state.
func (s *Service) ToggleSubscription(ctx context.Context, subscriberID, channelID int64) (bool, error) {
	if subscriberID == channelID {
		return false, ErrSelfSubscription
	}

	if _, err := s.users.GetPublicByID(ctx, channelID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, ErrChannelNotFound
		}
		return false, ErrSubscribeFailed.Because(err)
	}

	removed, err := s.subs.Delete(ctx, subscriberID, channelID)
	if err != nil {
		return false, ErrSubscribeFailed.Because(err)
	}
	subscribed := !removed
	if subscribed {
		// a concurrent toggle may have inserted the same row first
		if err := s.subs.Create(ctx, subscriberID, channelID); err != nil && !errors.Is(err, repository.ErrDuplicate) {
			return false, ErrSubscribeFailed.Because(err)
		}
	}

	s.invalidate(ctx, subscriberID, channelID)
	return subscribed, nil
}

// WatchHistory returns the user's watched videos, most recent first. Videos
// that no longer exist are skipped.
func (s *Service) WatchHistory(ctx context.Context, userID int64) ([]HistoryEntry, error) {
	user, err := s.users.GetPublicByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, ErrHistoryFailed.Because(err)
	}
	if len(user.WatchHistory) == 0 {
		return []HistoryEntry{}, nil
	}

	videos, err := s.videos.GetByIDs(ctx, user.WatchHistory)
	if err != nil {
		return nil, ErrHistoryFailed.Because(err)
	}
	byID := make(map[int64]*domain.Video, len(videos))
	ownerIDs := make([]int64, 0, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
		ownerIDs = append(ownerIDs, v.OwnerID)
	}

	owners, err := s.users.GetByIDs(ctx, uniqueIDs(ownerIDs))
	if err != nil {
		return nil, ErrHistoryFailed.Because(err)
	}
	ownerByID := make(map[int64]*Owner, len(owners))
	for _, o := range owners {
		ownerByID[o.ID] = &Owner{ID: o.ID, Username: o.Username, FullName: o.FullName, Avatar: o.Avatar}
	}

	entries := make([]HistoryEntry, 0, len(user.WatchHistory))
	for _, id := range user.WatchHistory {
		v, ok := byID[id]
		if !ok {
			continue
		}
		entries = append(entries, HistoryEntry{
			ID:          v.ID,
			Title:       v.Title,
			Description: v.Description,
			VideoFile:   v.VideoFile,
			Thumbnail:   v.Thumbnail,
			Duration:    v.Duration,
			Views:       v.Views,
			IsPublished: v.IsPublished,
			CreatedAt:   v.CreatedAt,
			Owner:       ownerByID[v.OwnerID],
		})
	}
	return entries, nil
}

// RecordWatch counts a view and moves the video to the front of the user's
// history.
func (s *Service) RecordWatch(ctx context.Context, userID, videoID int64) error {
	if _, err := s.videos.GetByID(ctx, videoID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrVideoNotFound
		}
		return ErrWatchFailed.Because(err)
	}

	if err := s.videos.IncrementViews(ctx, videoID); err != nil {
		return ErrWatchFailed.Because(err)
	}
	if err := s.users.PushWatchHistory(ctx, userID, videoID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return ErrWatchFailed.Because(err)
	}
	return nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
