package middleware

import (
	"go-payslip/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		ensureRequestID(c)
		c.Next()
	}
}

// ensureRequestID reuses the caller's X-Request-ID or mints one, and exposes
// it on the gin context, the request context and the response.
func ensureRequestID(c *gin.Context) string {
	rid := c.GetHeader(HeaderRequestID)
	if rid == "" {
		rid = uuid.New().String()
	}

	c.Set("request_id", rid)
	c.Request = c.Request.WithContext(contextutil.WithRequestID(c.Request.Context(), rid))
	c.Header(HeaderRequestID, rid)
	return rid
}
