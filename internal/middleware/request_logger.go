package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// unmatchedRoute labels requests that hit no registered route
const unmatchedRoute = "unmatched"

// RequestLogger logs one access entry per request, keyed by the matched
// route template rather than the raw path.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		level, msg := accessLevel(status)
		ce := logger.Check(level, msg)
		if ce == nil {
			return
		}

		route := c.FullPath()
		fields := []zap.Field{
			zap.String("request_id", GetRequestID(c)),
			zap.String("method", c.Request.Method),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.Int("response_bytes", c.Writer.Size()),
			zap.String("client_ip", c.ClientIP()),
		}
		if route == "" {
			// Unknown paths are logged verbatim only when no route matched.
			fields = append(fields,
				zap.String("route", unmatchedRoute),
				zap.String("path", c.Request.URL.Path),
			)
		} else {
			fields = append(fields, zap.String("route", route))
		}
		if origin := c.GetHeader("Origin"); origin != "" {
			fields = append(fields, zap.String("origin", origin))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		ce.Write(fields...)
	}
}

func accessLevel(status int) (zapcore.Level, string) {
	switch {
	case status >= http.StatusInternalServerError:
		return zapcore.ErrorLevel, "request failed"
	case status == http.StatusTooManyRequests:
		return zapcore.WarnLevel, "request rate limited"
	case status >= http.StatusBadRequest:
		return zapcore.WarnLevel, "client error"
	default:
		return zapcore.InfoLevel, "request"
	}
}
