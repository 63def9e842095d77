package middleware

import "github.com/gin-gonic/gin"

// contextKey is used for values stored by this package. Using a custom type prevents collisions.
type contextKey string

const (
	loggerKey    = contextKey("logger")
	loggerCtxKey = contextKey("request_logger")
	requestIDKey = contextKey("requestID")

	RequestIDHeader = "X-Request-ID"
)

// GetRequestID returns the id assigned by StructuredLoggingMiddleware.
func GetRequestID(c *gin.Context) (string, bool) {
	id, exists := c.Get(string(requestIDKey))
	if !exists {
		return "", false
	}
	requestID, ok := id.(string)
	return requestID, ok
}
