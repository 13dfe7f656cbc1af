package middleware

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// captureWriter buffers the response body while forwarding it to the client
// so a successful GET can be stored in the cache afterwards.
type captureWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	cw.buf.Write(b)
	return cw.ResponseWriter.Write(b)
}

// Cache serves repeated GETs from redis for the given TTL. A nil client
// disables caching entirely; only 200 responses are stored. Keys are the
// request path plus query, under a fixed prefix.
func Cache(client *redis.Client, ttl time.Duration) gin.HandlerFunc {
	if client == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := "hotelcache:" + c.Request.URL.RequestURI()
		ctx, cancel := context.WithTimeout(c.Request.Context(), 500*time.Millisecond)
		defer cancel()

		if cached, err := client.Get(ctx, key).Bytes(); err == nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
			c.Abort()
			return
		}

		cw := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = cw
		c.Next()

		if cw.Status() == http.StatusOK && cw.buf.Len() > 0 {
			// best effort; a failed write just means a cache miss next time
			client.Set(context.Background(), key, cw.buf.Bytes(), ttl)
		}
	}
}
