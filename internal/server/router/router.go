package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/restocked/stocklog/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(entries *handlers.EntryHandler, logs *handlers.LogHandler, dashboard *handlers.DashboardHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	api := r.Group("/api")
	{
		api.POST("/entries", entries.Create)
		api.GET("/entries/:id", entries.Get)
		api.POST("/entries/:id/begin", entries.Begin)
		api.POST("/entries/:id/category", entries.SelectCategory)
		api.POST("/entries/:id/worksheet/back", entries.BackToCategory)
		api.PATCH("/entries/:id/info", entries.UpdateInfo)
		api.POST("/entries/:id/items", entries.AddItem)
		api.PATCH("/entries/:id/items/:index", entries.UpdateItem)
		api.DELETE("/entries/:id/items/:index", entries.RemoveItem)
		api.POST("/entries/:id/recognize", entries.Recognize)
		api.POST("/entries/:id/review", entries.Review)
		api.POST("/entries/:id/summary/back", entries.BackToWorksheet)
		api.POST("/entries/:id/confirm", entries.Confirm)

		api.GET("/logs", logs.List)
		api.GET("/logs/:id", logs.Get)
		api.DELETE("/logs/:id", logs.Delete)

		api.GET("/dashboard", dashboard.Summary)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
