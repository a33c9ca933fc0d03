package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/linkhub-io/linkhub/app/cfg"
)

// NewServer creates the catalog HTTP server with all routes configured.
func NewServer(handler *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// CORS for the frontend
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler)

	return r
}

func setupRoutes(r *gin.Engine, handler *Handler) {
	r.GET("/healthz", handler.GetHealth)

	api := r.Group("/api")
	{
		api.GET("/sites", handler.GetSites)
		api.GET("/categories", handler.GetCategories)
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":     "LinkHub",
			"version":     cfg.Get().Version,
			"description": "Issue-driven link directory catalog server",
			"endpoints": map[string]string{
				"sites":      "/api/sites",
				"categories": "/api/categories",
				"health":     "/healthz",
			},
		})
	})
}
