package middleware

import (
	"time"

	"github.com/annel0/terrain2d/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestLogger снабжает каждый HTTP-запрос trace-ID и пишет краткие логи.
// Использует глобальный logging пакет.

type RequestLogger struct{}

func NewRequestLogger() *RequestLogger { return &RequestLogger{} }

func (rl *RequestLogger) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := uuid.NewString()
		c.Set("trace_id", traceID)

		start := time.Now()
		method := c.Request.Method
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		logging.LogInfo("[HTTP] ▶ %s %s trace=%s", method, path, traceID)

		c.Next()

		status := c.Writer.Status()
		latency := time.Since(start)
		logging.LogInfo("[HTTP] ◀ %s %s %d %s trace=%s", method, path, status, latency, traceID)
	}
}
