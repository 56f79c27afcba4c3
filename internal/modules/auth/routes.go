package auth

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	users := v1.Group("/users")
	{
		users.POST("/register", h.Register)
		users.POST("/login", h.Login)
		users.POST("/refresh-token", h.RefreshToken)
	}
}

// RegisterProtectedRoutes expects protected to be behind middleware.JWTAuth.
func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	users := protected.Group("/users")
	{
		users.POST("/logout", h.Logout)
		users.POST("/change-password", h.ChangePassword)
		users.GET("/current-user", h.CurrentUser)
		users.PATCH("/update-account", h.UpdateAccount)
		users.PATCH("/avatar", h.UpdateAvatar)
		users.PATCH("/cover-image", h.UpdateCoverImage)
	}
}
