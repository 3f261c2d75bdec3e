package requestid

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// Header carries the request ID on both incoming and outgoing requests.
	Header     = "X-Request-ID"
	contextKey = "request_id"
)

// Generate produces a fresh request ID. The gateway stamps one onto every
// outgoing call so upstream logs can be correlated with the console's.
func Generate() string {
	return uuid.NewString()
}

// Middleware assigns a request ID to each request hitting the status server.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(Header)
		if reqID == "" {
			reqID = Generate()
		}

		c.Set(contextKey, reqID)
		c.Writer.Header().Set(Header, reqID)

		c.Next()
	}
}

// Value returns the request ID stored in the Gin context.
func Value(c *gin.Context) string {
	if v, exists := c.Get(contextKey); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
