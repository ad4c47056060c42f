package leave

import (
	"github.com/servicein2it/leave-in2it-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	requests := r.Group("/leave-requests")
	requests.Use(middleware.AuthMiddleware())
	{
		requests.GET("", handler.GetAll)
		requests.GET("/:id", handler.GetById)
		requests.POST("", middleware.Idempotency(rdb), handler.Create)
		requests.PUT("/:id", handler.Update)
		requests.DELETE("/:id", handler.Delete)
	}
}
