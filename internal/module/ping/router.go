package ping

import (
	"context"
	"time"

	"recruiting-portal/internal/global/database"
	"recruiting-portal/internal/global/response"

	"github.com/gin-gonic/gin"
)

const version = "1.0.0"

func (p *ModulePing) InitRouter(r *gin.RouterGroup) {
	r.GET("/ping", Ping)
}

// Ping reports liveness plus the reachability of MySQL and Redis.
func Ping(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, 2*time.Second)
	defer cancel()

	result := gin.H{
		"message":  "pong",
		"version":  version,
		"database": "ok",
		"redis":    "ok",
	}
	if database.DB == nil {
		result["database"] = "unavailable"
	} else if sqlDB, err := database.DB.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		result["database"] = "unavailable"
	}
	if database.RDB == nil || database.RDB.Ping(ctx).Err() != nil {
		result["redis"] = "unavailable"
	}
	if result["database"] != "ok" || result["redis"] != "ok" {
		log.Warn("dependency unavailable", "database", result["database"], "redis", result["redis"])
	}
	response.Success(c, result)
}
