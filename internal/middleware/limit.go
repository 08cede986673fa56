package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// LimitBody caps the request body at maxBytes. A declared length over the
// cap is refused up front; a body that grows past it fails while being read.
func LimitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.String(http.StatusRequestEntityTooLarge, "Request body too large")
			c.Abort()
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
