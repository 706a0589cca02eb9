package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Misscott/LocationAPI/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ── Login rate limiter (Redis) ───────────────────────────────────────────────

const (
	loginLimit  = 20
	loginWindow = time.Minute
)

// LoginRateLimiter limits login attempts per IP using a Redis counter, so the
// limit holds across replicas. Redis being down fails open: login availability
// beats attempt throttling.
func LoginRateLimiter(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:login:%s", c.ClientIP())
		ctx := c.Request.Context()

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Warn().Err(err).Msg("login rate limiter unavailable")
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(ctx, key, loginWindow)
		}
		if count > loginLimit {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierror.New("too many login attempts, retry in a minute", http.StatusTooManyRequests))
			return
		}
		c.Next()
	}
}

// ── General API rate limiter (in-process) ────────────────────────────────────

// rateEntry tracks request counts per IP within a sliding window.
type rateEntry struct {
	count     int
	windowEnd time.Time
	mu        sync.Mutex
}

var (
	apiRateMap   = make(map[string]*rateEntry)
	apiRateMapMu sync.Mutex
)

// RateLimiter is a per-process sliding-window limiter for the general API
// surface. Coarse on purpose: the hard limit on login is the Redis one.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		apiRateMapMu.Lock()
		entry, exists := apiRateMap[ip]
		if !exists {
			entry = &rateEntry{}
			apiRateMap[ip] = entry
		}
		apiRateMapMu.Unlock()

		entry.mu.Lock()
		defer entry.mu.Unlock()

		now := time.Now()
		if now.After(entry.windowEnd) {
			entry.count = 0
			entry.windowEnd = now.Add(window)
		}

		entry.count++
		if entry.count > limit {
			c.Header("Retry-After", entry.windowEnd.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierror.New("too many requests", http.StatusTooManyRequests))
			return
		}
		c.Next()
	}
}

// Periodically removes expired entries so IPs that never return do not
// accumulate.

const purgeInterval = 5 * time.Minute

func init() {
	go purgeExpiredEntries()
}

func purgeExpiredEntries() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()

		apiRateMapMu.Lock()
		purged := 0
		for ip, entry := range apiRateMap {
			entry.mu.Lock()
			if now.After(entry.windowEnd) {
				delete(apiRateMap, ip)
				purged++
			}
			entry.mu.Unlock()
		}
		apiRateMapMu.Unlock()

		if purged > 0 {
			log.Debug().
				Int("entries_purged", purged).
				Int("entries_remaining", len(apiRateMap)).
				Msg("rate limiter map purged")
		}
	}
}
