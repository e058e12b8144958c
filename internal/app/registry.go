package app

import (
	"go-workforce/internal/config"
	"go-workforce/internal/employee"
	"go-workforce/internal/messaging/kafka"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- Services ---
	employeeService := employee.NewServiceWithOutbox(gormDB, employeeRepo, outboxRepo, rdb, logger)
	employeeService = employee.WithCacheTTL(employeeService, cfg.Redis.CacheTTL)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService, logger)

	// --- Routes Registration ---
	api := router.Group("/api")
	{
		employee.RegisterRoutes(api, employeeHandler, rdb, cfg.Redis.IdempotencyTTL)
	}
}
