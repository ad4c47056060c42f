package app

import (
	"database/sql"

	"github.com/servicein2it/leave-in2it-sub000/internal/auth"
	"github.com/servicein2it/leave-in2it-sub000/internal/emailtemplate"
	"github.com/servicein2it/leave-in2it-sub000/internal/leave"
	"github.com/servicein2it/leave-in2it-sub000/internal/messaging/kafka"
	"github.com/servicein2it/leave-in2it-sub000/internal/shared/counter"
	"github.com/servicein2it/leave-in2it-sub000/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	templateRepo := emailtemplate.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	userService := user.NewService(userRepo, rdb)
	leaveService := leave.NewServiceWithOutbox(db, leaveRepo, userRepo, outboxRepo, counterRepo)
	authService := auth.NewService(userRepo, auth.NewRedisSessionStore(rdb))
	templateService := emailtemplate.NewService(templateRepo)

	// --- Handlers ---
	userHandler := user.NewHandler(userService)
	leaveHandler := leave.NewHandlerWithRedis(leaveService, rdb)
	authHandler := auth.NewHandler(authService)
	templateHandler := emailtemplate.NewHandler(templateService)

	// --- Routes Registration ---
	api := router.Group("/api")
	{
		auth.RegisterRoutes(api, authHandler)
		user.RegisterRoutes(api, userHandler)
		leave.RegisterRoutes(api, leaveHandler, rdb)
		emailtemplate.RegisterRoutes(api, templateHandler)
	}

	return nil
}
