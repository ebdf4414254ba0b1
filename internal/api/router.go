package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/twmlab/probenplan-go/internal/config"
	"github.com/twmlab/probenplan-go/internal/handler"
	"github.com/twmlab/probenplan-go/internal/middleware"
	"github.com/twmlab/probenplan-go/internal/service"
)

// SetupRouter wires all routes
func SetupRouter(cfg *config.Config, planService *service.PlanService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS for the dashboard/map frontend
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Probenplan API is running",
		})
	})

	mapService := service.NewMapService(planService)

	uploadHandler := handler.NewUploadHandler(planService, cfg.MaxUploadBytes)
	dashboardHandler := handler.NewDashboardHandler(planService)
	mapHandler := handler.NewMapHandler(mapService)

	api := r.Group("/api/v1")
	{
		plan := api.Group("/plan")
		{
			plan.POST("/upload", middleware.RateLimit(10, time.Minute), uploadHandler.Upload)
			plan.GET("/uploads", uploadHandler.History)
			plan.GET("/status", dashboardHandler.GetStatus)

			plan.GET("/dashboard", dashboardHandler.GetDashboard)
			plan.GET("/legend", dashboardHandler.GetLegend)

			plan.GET("/map", mapHandler.GetPoints)
			plan.GET("/map/filters", mapHandler.GetFilterOptions)
			plan.GET("/map/statistics", mapHandler.GetStatistics)
		}
	}

	return r
}
