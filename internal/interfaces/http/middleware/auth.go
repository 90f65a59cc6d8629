// Package middleware contains the gin middleware for authentication
// and request context propagation.
package middleware

import (
	"net/http"
	"strings"

	appaccess "github.com/bizdesk/backend/internal/application/access"
	"github.com/bizdesk/backend/internal/domain/access"
	"github.com/bizdesk/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// Context keys
const (
	PrincipalKey  = "principal"
	SessionKey    = "session_token"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
	RequestIDKey  = "request_id"
)

// Auth creates the authentication middleware. Every request passing
// through it carries a freshly-resolved principal: the user row is
// re-read from the store, so role changes and deactivation take effect
// immediately.
func Auth(resolver *appaccess.PrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		principal, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse("UNAUTHENTICATED", "Authentication required", c.GetString(RequestIDKey)))
			return
		}

		c.Set(PrincipalKey, *principal)
		c.Set(SessionKey, token)
		c.Next()
	}
}

// GetPrincipal retrieves the resolved principal from the gin context
func GetPrincipal(c *gin.Context) (access.Principal, bool) {
	value, ok := c.Get(PrincipalKey)
	if !ok {
		return access.Principal{}, false
	}
	principal, ok := value.(access.Principal)
	return principal, ok
}

// GetSessionToken retrieves the raw session token from the gin context
func GetSessionToken(c *gin.Context) string {
	return c.GetString(SessionKey)
}

func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader(AuthHeaderKey)
	if !strings.HasPrefix(header, BearerPrefix) {
		return ""
	}
	return strings.TrimPrefix(header, BearerPrefix)
}
