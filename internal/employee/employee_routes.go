package employee

import (
	"time"

	"go-workforce/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rdb *redis.Client,
	idempotencyTTL time.Duration,
) {
	employees := r.Group("/employees")
	{
		employees.GET("", handler.GetAll)
		employees.GET("/:id", handler.GetByID)
		employees.POST("", middleware.Idempotency(rdb, idempotencyTTL), handler.Create)
		employees.PUT("/:id", handler.Update)
		employees.PATCH("/:id", handler.Patch)
		employees.DELETE("/:id", handler.Delete)
	}
}
