package wakelock

import (
	"context"
	"errors"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/logging"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/google/uuid"
)

var ErrWakeLockHeld = errors.New("wake lock is held by another delivery")

// Deletes the key only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Lease is a wake lock backed by an expiring Redis key.
// The TTL bounds how long a crashed holder can keep the lock.
type Lease struct {
	client *redis.Client
	log    logging.Logger
	prefix string
	ttl    time.Duration
}

func New(client *redis.Client, log logging.Logger, prefix string, ttl time.Duration) *Lease {
	if client == nil {
		panic(e.NewNilArgumentError("client"))
	}
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if ttl <= 0 {
		panic(e.NewInvalidArgumentError("ttl", "must be positive"))
	}
	return &Lease{client: client, log: log, prefix: prefix, ttl: ttl}
}

func (l *Lease) Acquire(ctx context.Context, tag string) (func(context.Context), error) {
	key := l.prefix + ":" + tag
	token := uuid.New().String()
	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrWakeLockHeld
	}
	return func(ctx context.Context) {
		if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
			l.log.Warning(ctx, "Could not release wake lock.", logging.Entry("tag", tag), logging.Entry("err", err))
		}
	}, nil
}
