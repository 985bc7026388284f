package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const apiKeyHeader = "X-API-Key"

// RequestID tags every request with a generated id, echoed in the
// X-Request-ID response header and used in server-side logs.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// APIKeyAuth rejects requests whose X-API-Key header does not exactly match
// the configured secret. The secret is never logged; at most a short prefix
// of the received value is.
func APIKeyAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(apiKeyHeader)
		if got != secret {
			log.Printf("rejected request %s %s: api key prefix %q request_id=%s",
				c.Request.Method, c.Request.URL.Path, keyPrefix(got), c.GetString("request_id"))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid API Key"})
			return
		}
		c.Next()
	}
}

func keyPrefix(key string) string {
	const n = 8
	if len(key) <= n {
		return key
	}
	return key[:n]
}
