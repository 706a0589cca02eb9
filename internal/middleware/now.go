package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

const nowKey = "request_now"

// Snapshot pins one timestamp per request. Every visibility check, count,
// and insert in the request uses this value, so a list and its total can
// never disagree about which rows exist.
func Snapshot() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(nowKey, time.Now().UTC())
		c.Next()
	}
}

// Now returns the request's pinned timestamp.
func Now(c *gin.Context) time.Time {
	if v, ok := c.Get(nowKey); ok {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}
	return time.Now().UTC()
}
