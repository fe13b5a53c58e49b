package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gogpu/trackheat"
)

// NewRouter returns a gin engine serving h.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		v1.GET("/heatmap", h.Heatmap)
		v1.GET("/heatmap.png", h.HeatmapPNG)
		v1.GET("/stats", h.Stats)
	}
	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := trackheat.Logger()
		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"took", time.Since(start),
		}
		if len(c.Errors) > 0 {
			log.Warn("api: request failed", append(args, "err", c.Errors.String())...)
			return
		}
		log.Debug("api: request", args...)
	}
}
