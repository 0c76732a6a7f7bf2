package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader is the header carrying the per-request correlation id.
const RequestIDHeader = "X-Request-Id"

// RequestID attaches a correlation id to every request, honoring one
// supplied by the client.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(RequestIDHeader, rid)
		c.Writer.Header().Set(RequestIDHeader, rid)
		c.Next()
	}
}

// GetRequestID returns the correlation id set by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	rid, _ := c.Get(RequestIDHeader)
	s, _ := rid.(string)
	return s
}
