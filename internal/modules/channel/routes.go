package channel

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the channel endpoints. All of them need the auth gate.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	users := protected.Group("/users")
	{
		users.GET("/c/:username", h.GetChannelProfile)
		users.GET("/history", h.GetWatchHistory)
	}

	protected.POST("/subscriptions/c/:channelId", h.ToggleSubscription)
	protected.POST("/videos/:videoId/watch", h.RecordWatch)
}
