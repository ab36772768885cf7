package middleware

import (
	"time"

	"yt-embed/infrastructure/logger"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request through the application logger.
func RequestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		entry := logger.GetLogger().WithFields(map[string]interface{}{
			"method":   ctx.Request.Method,
			"path":     ctx.FullPath(),
			"status":   ctx.Writer.Status(),
			"duration": time.Since(start).String(),
		})
		if len(ctx.Errors) > 0 {
			entry.WithField("errors", ctx.Errors.String()).Warn("Request completed with errors")
			return
		}
		entry.Debug("Request completed")
	}
}
