package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"hotelops/internal/pkg/response"
)

// InternalTokenAuth protects the housekeeping integration endpoints with a
// static bearer token. Only its bcrypt hash is configured.
func InternalTokenAuth(tokenHash string, log zerolog.Logger) gin.HandlerFunc {
	hash := []byte(strings.TrimSpace(tokenHash))

	return func(c *gin.Context) {
		if len(hash) == 0 {
			logAuthFailure(c, log, http.StatusServiceUnavailable, "token_not_configured")
			response.Error(c, http.StatusServiceUnavailable, "INTERNAL_AUTH_DISABLED", "Internal token is not configured")
			c.Abort()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logAuthFailure(c, log, http.StatusUnauthorized, "missing_auth")
			response.Error(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			logAuthFailure(c, log, http.StatusUnauthorized, "invalid_auth_format")
			response.Error(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'")
			c.Abort()
			return
		}

		if err := bcrypt.CompareHashAndPassword(hash, []byte(parts[1])); err != nil {
			logAuthFailure(c, log, http.StatusForbidden, "invalid_token")
			response.Error(c, http.StatusForbidden, "AUTH_INVALID", "Invalid internal token")
			c.Abort()
			return
		}

		c.Set("role", RoleHousekeeping)
		c.Next()
	}
}

func logAuthFailure(c *gin.Context, log zerolog.Logger, status int, reason string) {
	log.Warn().
		Int("status", status).
		Str("request_id", c.GetString(RequestIDKey)).
		Str("path", c.Request.URL.Path).
		Str("reason", reason).
		Msg("internal token rejected")
}
