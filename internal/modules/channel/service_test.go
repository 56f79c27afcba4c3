package channel

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"vidtube/internal/cache"
	"vidtube/internal/database"
	"vidtube/internal/domain"
	"vidtube/internal/pkg/apperr"
	"vidtube/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc    *Service
	users  *repository.UserRepository
	videos *repository.VideoRepository
	subs   *repository.SubscriptionRepository
	redis  *miniredis.Miniredis
}

func newFixture(t *testing.T, withCache bool) *fixture {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := database.Connect(fmt.Sprintf("file:channel_%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	f := &fixture{
		users:  repository.NewUserRepository(db),
		videos: repository.NewVideoRepository(db),
		subs:   repository.NewSubscriptionRepository(db),
	}

	var counts CountCache
	if withCache {
		f.redis = miniredis.RunT(t)
		c, err := cache.New(f.redis.Addr())
		require.NoError(t, err)
		t.Cleanup(func() { c.Close() })
		counts = c
	}
	f.svc = NewService(f.users, f.videos, f.subs, counts, time.Minute)
	return f
}

func (f *fixture) user(t *testing.T, username string) *domain.User {
	t.Helper()
	u := &domain.User{Username: username, Email: username + "@x.com", FullName: strings.ToUpper(username), Avatar: "/a.png"}
	require.NoError(t, u.SetPassword("p1"))
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) video(t *testing.T, owner *domain.User, title string) *domain.Video {
	t.Helper()
	v := &domain.Video{OwnerID: owner.ID, Title: title, VideoFile: "/v.mp4", Thumbnail: "/t.png", Duration: 12.5, IsPublished: true}
	require.NoError(t, f.videos.Create(context.Background(), v))
	return v
}

func TestService_ChannelProfile(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	ana := f.user(t, "ana")
	bob := f.user(t, "bob")
	cat := f.user(t, "cat")

	require.NoError(t, f.subs.Create(ctx, bob.ID, ana.ID))
	require.NoError(t, f.subs.Create(ctx, cat.ID, ana.ID))
	require.NoError(t, f.subs.Create(ctx, ana.ID, cat.ID))

	profile, err := f.svc.ChannelProfile(ctx, bob.ID, " ANA ")
	require.NoError(t, err)

	assert.Equal(t, ana.ID, profile.ID)
	assert.Equal(t, "ANA", profile.FullName)
	assert.Equal(t, int64(2), profile.SubscribersCount)
	assert.Equal(t, int64(1), profile.ChannelsSubscribedToCount)
	assert.True(t, profile.IsSubscribed)

	profile, err = f.svc.ChannelProfile(ctx, ana.ID, "ana")
	require.NoError(t, err)
	assert.False(t, profile.IsSubscribed)
}

func TestService_ChannelProfile_Errors(t *testing.T) {
	f := newFixture(t, false)

	_, err := f.svc.ChannelProfile(context.Background(), 1, "  ")
	assert.ErrorIs(t, err, ErrUsernameRequired)

	_, err = f.svc.ChannelProfile(context.Background(), 1, "ghost")
	assert.ErrorIs(t, err, ErrChannelNotFound)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestService_ChannelProfile_CachedCounts(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	ana := f.user(t, "ana")
	bob := f.user(t, "bob")
	cat := f.user(t, "cat")

	require.NoError(t, f.subs.Create(ctx, bob.ID, ana.ID))

	profile, err := f.svc.ChannelProfile(ctx, 0, "ana")
	require.NoError(t, err)
	assert.Equal(t, int64(1), profile.SubscribersCount)

	cached, err := f.redis.Get(countsKey(ana.ID))
	require.NoError(t, err)
	assert.Equal(t, "1:0", cached)

	// a write behind the service's back is not seen until the entry expires
	require.NoError(t, f.subs.Create(ctx, cat.ID, ana.ID))
	profile, err = f.svc.ChannelProfile(ctx, 0, "ana")
	require.NoError(t, err)
	assert.Equal(t, int64(1), profile.SubscribersCount)

	f.redis.FastForward(2 * time.Minute)
	profile, err = f.svc.ChannelProfile(ctx, 0, "ana")
	require.NoError(t, err)
	assert.Equal(t, int64(2), profile.SubscribersCount)
}

func TestService_ToggleSubscription(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	ana := f.user(t, "ana")
	bob := f.user(t, "bob")

	_, err := f.svc.ChannelProfile(ctx, bob.ID, "ana")
	require.NoError(t, err)
	require.True(t, f.redis.Exists(countsKey(ana.ID)))

	subscribed, err := f.svc.ToggleSubscription(ctx, bob.ID, ana.ID)
	require.NoError(t, err)
	assert.True(t, subscribed)
	assert.False(t, f.redis.Exists(countsKey(ana.ID)))

	profile, err := f.svc.ChannelProfile(ctx, bob.ID, "ana")
	require.NoError(t, err)
	assert.Equal(t, int64(1), profile.SubscribersCount)
	assert.True(t, profile.IsSubscribed)

	subscribed, err = f.svc.ToggleSubscription(ctx, bob.ID, ana.ID)
	require.NoError(t, err)
	assert.False(t, subscribed)

	profile, err = f.svc.ChannelProfile(ctx, bob.ID, "ana")
	require.NoError(t, err)
	assert.Zero(t, profile.SubscribersCount)
	assert.False(t, profile.IsSubscribed)
}

func TestService_ToggleSubscription_Errors(t *testing.T) {
	f := newFixture(t, false)
	ana := f.user(t, "ana")

	_, err := f.svc.ToggleSubscription(context.Background(), ana.ID, ana.ID)
	assert.ErrorIs(t, err, ErrSelfSubscription)

	_, err = f.svc.ToggleSubscription(context.Background(), ana.ID, 999)
	assert.ErrorIs(t, err, ErrChannelNotFound)
}

func TestService_WatchHistory(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	ana := f.user(t, "ana")
	bob := f.user(t, "bob")
	v1 := f.video(t, bob, "first")
	v2 := f.video(t, ana, "second")
	v3 := f.video(t, bob, "gone")

	require.NoError(t, f.svc.RecordWatch(ctx, ana.ID, v1.ID))
	require.NoError(t, f.svc.RecordWatch(ctx, ana.ID, v2.ID))
	require.NoError(t, f.svc.RecordWatch(ctx, ana.ID, v3.ID))
	require.NoError(t, f.svc.RecordWatch(ctx, ana.ID, v1.ID))
	require.NoError(t, f.videos.Delete(ctx, v3.ID))

	history, err := f.svc.WatchHistory(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)

	assert.Equal(t, v1.ID, history[0].ID)
	assert.Equal(t, int64(2), history[0].Views)
	require.NotNil(t, history[0].Owner)
	assert.Equal(t, "bob", history[0].Owner.Username)
	assert.Equal(t, v2.ID, history[1].ID)
	assert.Equal(t, "ana", history[1].Owner.Username)
}

func TestService_WatchHistory_Empty(t *testing.T) {
	f := newFixture(t, false)
	ana := f.user(t, "ana")

	history, err := f.svc.WatchHistory(context.Background(), ana.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
	assert.NotNil(t, history)
}

func TestService_RecordWatch_UnknownVideo(t *testing.T) {
	f := newFixture(t, false)
	ana := f.user(t, "ana")

	err := f.svc.RecordWatch(context.Background(), ana.ID, 42)
	assert.ErrorIs(t, err, ErrVideoNotFound)
}
