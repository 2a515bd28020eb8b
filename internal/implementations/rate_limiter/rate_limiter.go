package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/logging"
	ratelimiter "mealremind/internal/core/domain/rate_limiter"
	"time"

	"github.com/go-redis/redis/v9"
)

// Redis counts hits per key in fixed windows. Redis failures let the request through.
type Redis struct {
	client *redis.Client
	log    logging.Logger
	prefix string
	now    func() time.Time
}

func NewRedis(client *redis.Client, log logging.Logger, prefix string, now func() time.Time) *Redis {
	if client == nil {
		panic(e.NewNilArgumentError("client"))
	}
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Redis{client: client, log: log, prefix: prefix, now: now}
}

func (r *Redis) windowKey(key string, interval time.Duration) string {
	window := r.now().Unix() / int64(interval/time.Second)
	return fmt.Sprintf("%s:ratelimit:%s:%d", r.prefix, key, window)
}

func (r *Redis) CheckLimit(ctx context.Context, key string, limit ratelimiter.Limit) ratelimiter.Result {
	interval := limit.Interval.Duration()
	k := r.windowKey(key, interval)

	var hits *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		hits = pipe.Incr(ctx, k)
		pipe.Expire(ctx, k, interval)
		return nil
	})
	switch {
	case errors.Is(err, context.Canceled):
		return ratelimiter.NotAllowed()
	case err != nil:
		r.log.Error(
			ctx,
			"Could not check rate limit due to Redis client error.",
			logging.Entry("err", err),
			logging.Entry("key", key),
		)
		return ratelimiter.Allowed()
	case hits.Val() > int64(limit.Value):
		return ratelimiter.NotAllowed()
	default:
		return ratelimiter.Allowed()
	}
}
