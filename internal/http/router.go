package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Version)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Sales API endpoints
	var stats StatsReader
	if cfg.Database != nil {
		stats = cfg.Database
	}
	salesController := NewSalesController(cfg.Sales, stats)
	router.GET("/api/sales", salesController.Search)
	router.GET("/api/stats", salesController.Stats)

	// Seed loading endpoints
	seedController := NewSeedController(cfg.TaskClient, cfg.SeedFile)
	router.POST("/api/seed/load", seedController.Load)
	router.GET("/api/tasks/:id", seedController.TaskStatus)

	syncController := NewSeedSyncController(cfg.SeedSync)
	router.GET("/api/seed/sync", syncController.Status)
	router.POST("/api/seed/sync/run", syncController.RunNow)

	return router
}
