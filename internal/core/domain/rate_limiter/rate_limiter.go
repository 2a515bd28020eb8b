package ratelimiter

import (
	"context"
	"errors"
	"time"
)

var ErrRateLimitExceeded = errors.New("rate limit exceeded")

type Interval struct {
	value time.Duration
}

func (i Interval) Duration() time.Duration {
	if i.value == 0 {
		return time.Minute
	}
	return i.value
}

var (
	Minute = Interval{value: time.Minute}
	Hour   = Interval{value: time.Hour}
)

type Limit struct {
	Value    uint16
	Interval Interval
}

type Result struct {
	IsAllowed bool
}

func Allowed() Result {
	return Result{IsAllowed: true}
}

func NotAllowed() Result {
	return Result{IsAllowed: false}
}

type RateLimiter interface {
	CheckLimit(ctx context.Context, key string, limit Limit) Result
}
