package app

import (
	"context"
	"net/http"
	"time"

	"go-workforce/internal/config"
	"go-workforce/internal/middleware"
	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/connection"
	"go-workforce/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

const healthCheckTimeout = 2 * time.Second

// BuildApp connects the infrastructure, installs the global middleware chain
// and registers every route on router.
func BuildApp(router *gin.Engine, cfg *config.Config, logger *zap.Logger) error {
	apperror.Init()
	decimal.MarshalJSONWithoutQuotes = true

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, logger)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	redisClient, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Database.MaxRetries, logger)
	if err != nil {
		return err
	}
	if redisClient == nil {
		logger.Warn("REDIS_ADDR not set, list cache and idempotency disabled")
	} else {
		logger.Info("redis connection established")
	}

	router.Use(
		middleware.RequestID(),
		middleware.ContextLogger(logger),
		middleware.Metrics(),
		middleware.ErrorHandler(logger),
		middleware.RateLimitByIP(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst),
	)

	router.GET("/healthz", healthHandler(gormDB))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	registerModules(router, cfg, gormDB, redisClient, logger)

	return nil
}

func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			response.Fail(c, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"database": "up"})
	}
}
