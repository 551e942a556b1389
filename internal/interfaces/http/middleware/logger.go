package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"jobboard.backend/pkg/logger"
)

// quietPaths are polled constantly by health checks and scrapers and would drown the request log
var quietPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// LoggerMiddleware logs HTTP requests using the structured logger.
// The route template is logged instead of the raw URL so IDs and query strings stay out of the log.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		if _, quiet := quietPaths[path]; quiet {
			return
		}

		var extra []zap.Field
		if user, ok := CurrentUser(c); ok {
			extra = append(extra, zap.String("user_id", user.ID.String()), zap.String("role", string(user.Role)))
		}

		// RequestIDMiddleware stores the request id in the request context
		logger.LogRequest(c.Request.Context(), c.Request.Method, path, c.Writer.Status(), time.Since(start), c.ClientIP(), extra...)
	}
}
