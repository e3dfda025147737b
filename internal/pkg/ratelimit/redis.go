package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter counts requests in a fixed window using INCR + PEXPIRE.
// The counter is shared across instances pointing at the same Redis.
type RedisLimiter struct {
	rdb    *redis.Client
	prefix string
	max    int64
	window time.Duration
}

func NewRedisLimiter(rdb *redis.Client, prefix string, max int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, prefix: prefix, max: int64(max), window: window}
}

// Allow increments the window counter for key and reports whether the
// request is within the limit.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	windowStart := time.Now().UnixMilli() / l.window.Milliseconds()
	redisKey := fmt.Sprintf("textora:rate_limit:%s:%s:%d", l.prefix, key, windowStart)

	count, err := l.rdb.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, 0, err
	}
	if count == 1 {
		l.rdb.PExpire(ctx, redisKey, l.window+time.Second)
	}

	if count > l.max {
		elapsed := time.Duration(time.Now().UnixMilli()%l.window.Milliseconds()) * time.Millisecond
		return false, l.window - elapsed, nil
	}
	return true, 0, nil
}
