package middleware

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "jobtracker:ratelimit:"

// Returns {allowed, pttl}. A counter left without an expiry gets a fresh
// window so it cannot block forever.
const rateLimitScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
  return {1, 0}
end
if current <= tonumber(ARGV[2]) then
  return {1, 0}
end
local ttl = redis.call("PTTL", KEYS[1])
if ttl < 0 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
  ttl = tonumber(ARGV[1])
end
return {0, ttl}
`

const redisLimiterTimeout = 250 * time.Millisecond

// RedisLimiter shares fixed-window counters across instances. Redis
// failures let the request through.
type RedisLimiter struct {
	client *redis.Client
	script *redis.Script
}

func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	if client == nil {
		return nil
	}
	return &RedisLimiter{client: client, script: redis.NewScript(rateLimitScript)}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration) {
	if l == nil || key == "" || limit <= 0 || window <= 0 {
		return true, 0
	}
	ctx, cancel := context.WithTimeout(ctx, redisLimiterTimeout)
	defer cancel()
	reply, err := l.script.Run(ctx, l.client, []string{redisKeyPrefix + key}, windowMillis(window), limit).Int64Slice()
	if err != nil || len(reply) != 2 {
		return true, 0
	}
	if reply[0] == 1 {
		return true, 0
	}
	return false, time.Duration(reply[1]) * time.Millisecond
}

func windowMillis(window time.Duration) int64 {
	if ms := window.Milliseconds(); ms > 0 {
		return ms
	}
	return 1
}
