package payroll

import (
	"go-payslip/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	slips := r.Group("/salary-slips")
	slips.Use(middleware.AuthMiddleware())
	{
		slips.GET("", handler.GetAll)
		slips.GET("/:id", handler.GetByID)
		slips.GET("/:id/download", handler.DownloadStored)
		slips.POST("/breakdown", handler.Breakdown)
		slips.POST("/download", handler.Download)
		slips.POST("/export", handler.Export)
		slips.POST("/requests", handler.Request)
		if redisClient != nil {
			slips.POST("", middleware.Idempotency(redisClient), handler.Generate)
		} else {
			slips.POST("", handler.Generate)
		}
	}
}
