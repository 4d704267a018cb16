package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// local dashboard dev servers
var devOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://127.0.0.1:3000",
	"http://127.0.0.1:5173",
}

const (
	corsAllowHeaders = "Content-Type, Content-Length, Authorization, Accept, Origin, X-Requested-With, X-Request-ID"
	corsAllowMethods = "GET, POST, PATCH, OPTIONS"
)

// OriginPolicy is the browser origin allow-list. The same policy gates CORS
// responses and the room feed WebSocket handshake.
type OriginPolicy struct {
	allowed map[string]bool
}

func NewOriginPolicy(extraOrigins []string) *OriginPolicy {
	p := &OriginPolicy{allowed: make(map[string]bool, len(devOrigins)+len(extraOrigins))}
	for _, o := range append(append([]string(nil), devOrigins...), extraOrigins...) {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			p.allowed[o] = true
		}
	}
	return p
}

// Allowed reports whether a browser at origin may call the API.
func (p *OriginPolicy) Allowed(origin string) bool {
	return origin != "" && p.allowed[origin]
}

// AllowedOrNone also admits requests without an Origin header, which come
// from non-browser clients.
func (p *OriginPolicy) AllowedOrNone(origin string) bool {
	return origin == "" || p.Allowed(origin)
}

// CORS reflects allowed origins with credentials and answers preflight
// requests before auth runs.
func CORS(policy *OriginPolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		if origin := c.GetHeader("Origin"); policy.Allowed(origin) {
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")
		}
		h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
		h.Set("Access-Control-Allow-Methods", corsAllowMethods)
		h.Set("Access-Control-Max-Age", "600")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
