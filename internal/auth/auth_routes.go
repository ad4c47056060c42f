package auth

import (
	"time"

	"github.com/servicein2it/leave-in2it-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RegisterRoutes mounts /auth endpoints. Login and refresh are rate
// limited per client IP since they are the unauthenticated surface.
func RegisterRoutes(rg *gin.RouterGroup, handler *Handler) {
	limiter := middleware.RateLimitByIP(rate.Every(time.Second), 5)

	auth := rg.Group("/auth")
	{
		auth.POST("/login", limiter, handler.Login)
		auth.POST("/refresh", limiter, handler.Refresh)
		auth.POST("/logout", handler.Logout)
		auth.GET("/me", middleware.AuthMiddleware(), handler.GetMe)
	}
}
