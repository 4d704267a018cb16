package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"
)

// RequestLogger tags every request with an id, logs it once it completes
// and turns panics into a 500 envelope.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Writer.Header().Set(RequestIDHeader, id)

		defer func() {
			if recovered := recover(); recovered != nil {
				log.Error().
					Str("request_id", id).
					Str("method", c.Request.Method).
					Str("path", c.Request.URL.Path).
					Str("panic", fmt.Sprintf("%v", recovered)).
					Bytes("stack", debug.Stack()).
					Msg("request panicked")

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "INTERNAL_ERROR",
						"message": "Internal server error",
					},
				})
			}

			status := c.Writer.Status()
			var ev *zerolog.Event
			switch {
			case status >= http.StatusInternalServerError:
				ev = log.Error()
			case status >= http.StatusBadRequest:
				ev = log.Warn()
			default:
				ev = log.Info()
			}
			if len(c.Errors) > 0 {
				ev = ev.Str("errors", c.Errors.String())
			}

			ev.Str("request_id", id).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Str("query", c.Request.URL.RawQuery).
				Int("status", status).
				Dur("latency", time.Since(start)).
				Str("client_ip", c.ClientIP()).
				Int64("user_id", c.GetInt64("user_id")).
				Str("role", c.GetString("role")).
				Msg("request")
		}()

		c.Next()
	}
}
