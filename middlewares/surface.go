package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// API surfaces. Both mount points share handlers; list handlers scope their
// results by which surface served the request.
const (
	SurfaceDefault = "v1"
	SurfaceV2      = "v2"
)

const ctxSurface = "api_surface"

// TagSurface records which mount point is serving the request.
func TagSurface(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ctxSurface, name)
		c.Next()
	}
}

// Surface returns the serving mount point, defaulting to the v1 surface.
func Surface(c *gin.Context) string {
	if v, ok := c.Get(ctxSurface); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return SurfaceDefault
}

// RequestLogger logs one line per request.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}
