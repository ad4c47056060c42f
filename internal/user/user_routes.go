package user

import (
	"github.com/servicein2it/leave-in2it-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("", middleware.RoleMiddleware(RoleAdmin), handler.GetAll)
		users.GET("/options", middleware.RoleMiddleware(RoleAdmin), handler.GetOptions)
		users.GET("/:id", handler.GetById)
		users.POST("", middleware.RoleMiddleware(RoleAdmin), handler.Create)
		users.PUT("/:id", middleware.RoleMiddleware(RoleAdmin), handler.Update)
		users.PATCH("/:id", middleware.RoleMiddleware(RoleAdmin), handler.Patch)
		users.DELETE("/:id", middleware.RoleMiddleware(RoleAdmin), handler.Delete)
	}
}
