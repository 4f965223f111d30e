package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"comments-service/handler"
	"comments-service/middleware"
)

func Setup(h *handler.Handler) *gin.Engine {
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.PrometheusMiddleware("comments-service"))

	r.POST("/api/channel-info", h.ChannelInfo)
	r.POST("/api/scrape-comments", h.ScrapeComments)
	r.GET("/api/download/:filename", h.DownloadFile)
	r.GET("/api/files", h.ListFiles)
	r.GET("/api/files-stats", h.ListFilesWithStats)
	r.GET("/api/file-detail/:filename", h.FileDetail)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check endpoints
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "comments-service"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "comments-service"})
	})

	return r
}
