package tracing

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"recruiting-portal/config"

	"github.com/redis/go-redis/v9"
)

// RedisHook spans every Redis command and pipeline.
type RedisHook struct {
	slowThreshold time.Duration
}

func NewRedisHook() *RedisHook {
	ms := config.Get().Sentry.Tracing.RedisSlowThresholdMs
	return &RedisHook{slowThreshold: time.Duration(ms) * time.Millisecond}
}

func (h *RedisHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return next(ctx, network, addr)
	}
}

func (h *RedisHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		span := StartSpan(ctx, "db.redis", strings.ToUpper(cmd.Name()))
		if span != nil {
			span.SetData("db.system", "redis")
			ctx = span.Context()
		}
		err := next(ctx, cmd)

		reported := err
		if errors.Is(err, redis.Nil) {
			reported = nil
		}
		Finish(span, reported, time.Since(start), h.slowThreshold)
		return err
	}
}

func (h *RedisHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		span := StartSpan(ctx, "db.redis.pipeline", pipelineDescription(cmds))
		if span != nil {
			span.SetData("db.system", "redis")
			span.SetData("redis.pipeline_length", len(cmds))
			ctx = span.Context()
		}
		err := next(ctx, cmds)
		Finish(span, err, time.Since(start), h.slowThreshold)
		return err
	}
}

// pipelineDescription lists at most three command names.
func pipelineDescription(cmds []redis.Cmder) string {
	const maxShow = 3
	names := make([]string, 0, maxShow)
	for i, cmd := range cmds {
		if i == maxShow {
			break
		}
		names = append(names, strings.ToUpper(cmd.Name()))
	}
	desc := "PIPELINE: " + strings.Join(names, ", ")
	if len(cmds) > maxShow {
		desc += "..."
	}
	return desc
}
