package channel

import (
	"net/http"
	"strconv"

	"vidtube/internal/middleware"
	"vidtube/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetChannelProfile returns a channel with its subscription counts.
// @Summary		Channel profile
// @Tags		Channels
// @Param		username	path	string	true	"channel username"
// @Success		200	{object}		ProfileResponse
// @Failure		404	{object}		map[string]interface{}
// @Router		/users/c/{username} [get]
func (h *Handler) GetChannelProfile(c *gin.Context) {
	profile, err := h.service.ChannelProfile(c.Request.Context(), middleware.CurrentUserID(c), c.Param("username"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, profile, "user channel fetched successfully")
}

func (h *Handler) GetWatchHistory(c *gin.Context) {
	history, err := h.service.WatchHistory(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, history, "watch history fetched successfully")
}

func (h *Handler) ToggleSubscription(c *gin.Context) {
	channelID, err := parseID(c.Param("channelId"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	subscribed, err := h.service.ToggleSubscription(c.Request.Context(), middleware.CurrentUserID(c), channelID)
	if err != nil {
		response.Fail(c, err)
		return
	}

	message := "unsubscribed successfully"
	if subscribed {
		message = "subscribed successfully"
	}
	response.Success(c, http.StatusOK, SubscriptionResponse{Subscribed: subscribed}, message)
}

func (h *Handler) RecordWatch(c *gin.Context) {
	videoID, err := parseID(c.Param("videoId"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	if err := h.service.RecordWatch(c.Request.Context(), middleware.CurrentUserID(c), videoID); err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"videoId": videoID}, "view recorded")
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
