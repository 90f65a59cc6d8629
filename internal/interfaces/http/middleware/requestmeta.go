package middleware

import (
	"github.com/bizdesk/backend/internal/application/mutation"
	"github.com/bizdesk/backend/internal/domain/audit"
	"github.com/gin-gonic/gin"
	"github.com/mssola/useragent"
)

// RequestMetadata captures the transport details of each request and
// attaches them to the request context for the audit writer. The
// user-agent string is normalized to browser name and version; raw
// strings vary too much to be useful in the trail.
func RequestMetadata() gin.HandlerFunc {
	return func(c *gin.Context) {
		meta := audit.RequestMetadata{
			Method:    c.Request.Method,
			Path:      c.FullPath(),
			IP:        c.ClientIP(),
			UserAgent: normalizeUserAgent(c.Request.UserAgent()),
		}
		if meta.Path == "" {
			meta.Path = c.Request.URL.Path
		}

		ctx := mutation.WithRequestMetadata(c.Request.Context(), meta)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func normalizeUserAgent(raw string) string {
	if raw == "" {
		return ""
	}
	ua := useragent.New(raw)
	name, version := ua.Browser()
	if name == "" {
		return raw
	}
	if version == "" {
		return name
	}
	return name + "/" + version
}
