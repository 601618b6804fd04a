package database

import (
	"context"
	"fmt"
	"time"

	"recruiting-portal/config"
	"recruiting-portal/internal/global/sentry/tracing"
	"recruiting-portal/tools"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client

func InitRedis() {
	c := config.Get().Redis
	client := NewRedis(&redis.Options{
		Addr:     c.Host + ":" + c.Port,
		Password: c.Password,
		DB:       c.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		tools.PanicOnErr(fmt.Errorf("connect redis %s: %w", client.Options().Addr, err))
	}
	RDB = client
}

// NewRedis builds a client with the tracing hook attached when Sentry is on.
func NewRedis(opts *redis.Options) *redis.Client {
	client := redis.NewClient(opts)
	if tracing.IsEnabled() {
		client.AddHook(tracing.NewRedisHook())
	}
	return client
}
