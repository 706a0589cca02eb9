package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/Misscott/LocationAPI/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const healthTimeout = 3 * time.Second

type HealthHandler struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewHealthHandler(db *gorm.DB, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, rdb: rdb}
}

// Check pings each backing store and, while Redis is reachable, reports how
// many email jobs sit in the dead letter queue. Any store down turns the
// response into a 503; credentials and driver errors never reach the body.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	components := gin.H{}
	healthy := true

	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		components["database"] = "down"
		healthy = false
	} else {
		components["database"] = "up"
	}

	if err := h.rdb.Ping(ctx).Err(); err != nil {
		components["redis"] = "down"
		healthy = false
	} else {
		components["redis"] = "up"
		if n, err := worker.DLQLength(ctx, h.rdb, worker.QueueEmail); err == nil {
			components["emailDeadLetters"] = n
		}
	}

	status := http.StatusOK
	body := gin.H{"status": "ok", "components": components}
	if !healthy {
		status = http.StatusServiceUnavailable
		body["status"] = "degraded"
	}
	c.JSON(status, body)
}
