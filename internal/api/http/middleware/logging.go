package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/projecthub-server/internal/logger"
)

// Logging logs method, path, status and duration of each request.
type Logging struct {
	logger *logger.Logger
}

func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

func (l *Logging) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}

		if len(c.Errors) > 0 && status >= 500 {
			args = append(args, "error", c.Errors.Last().Error())
			l.logger.Error("HTTP request failed", args...)
			return
		}

		l.logger.Info("HTTP request completed", args...)
	}
}
