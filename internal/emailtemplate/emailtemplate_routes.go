package emailtemplate

import (
	"github.com/servicein2it/leave-in2it-sub000/internal/middleware"
	"github.com/servicein2it/leave-in2it-sub000/internal/user"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	templates := r.Group("/email-templates")
	templates.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(user.RoleAdmin))
	{
		templates.GET("", handler.GetAll)
		templates.GET("/:id", handler.GetById)
		templates.POST("", handler.Create)
		templates.PUT("/:id", handler.Update)
	}
}
