package channel

import "vidtube/internal/pkg/apperr"

var (
	ErrUsernameRequired = apperr.BadRequest("username is missing").WithCode("USERNAME_REQUIRED")
	ErrInvalidID        = apperr.BadRequest("invalid id").WithCode("INVALID_ID")
	ErrChannelNotFound  = apperr.NotFound("channel does not exist").WithCode("CHANNEL_NOT_FOUND")
	ErrVideoNotFound    = apperr.NotFound("video does not exist").WithCode("VIDEO_NOT_FOUND")
	ErrSelfSubscription = apperr.BadRequest("cannot subscribe to your own channel").WithCode("SELF_SUBSCRIPTION")
	ErrUserNotFound     = apperr.NotFound("user does not exist").WithCode("USER_NOT_FOUND")
	ErrChannelFailed    = apperr.Internal("something went wrong while fetching the channel", nil).WithCode("CHANNEL_FAILED")
	ErrHistoryFailed    = apperr.Internal("something went wrong while fetching watch history", nil).WithCode("HISTORY_FAILED")
	ErrSubscribeFailed  = apperr.Internal("something went wrong while updating the subscription", nil).WithCode("SUBSCRIPTION_FAILED")
	ErrWatchFailed      = apperr.Internal("something went wrong while recording the view", nil).WithCode("WATCH_FAILED")
)
