package api

import (
	"PriceTracker/internal/api/middleware"
	"PriceTracker/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			userGroup.POST("/register", group.UserHandler.Register)
		}

		trackingGroup := apiGroup.Group("/tracking")
		trackingGroup.Use(middleware.AuthMiddleware())
		{
			trackingGroup.POST("", group.TrackingHandler.Track)
			trackingGroup.GET("", group.TrackingHandler.List)
			trackingGroup.GET("/:tracking_id", group.TrackingHandler.Detail)
			trackingGroup.DELETE("/:tracking_id", group.TrackingHandler.Remove)
		}

		adminGroup := apiGroup.Group("/admin")
		adminGroup.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
		{
			adminGroup.POST("/broadcast", group.UserHandler.Broadcast)
		}
	}

	return r
}
