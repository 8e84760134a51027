package storage

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	cacheKeyPrefix     = "forecast:"
	generationCacheKey = "forecast:generation"
)

// getCurrentScript resolves the generation and reads the entry in one round trip.
var getCurrentScript = redis.NewScript(`
local gen = redis.call('GET', KEYS[1])
if not gen then
	gen = '0'
end

return redis.call('GET', ARGV[1] .. gen .. ':' .. ARGV[2])
`)

// setCurrentScript writes the entry only while the caller's generation is current.
var setCurrentScript = redis.NewScript(`
local gen = redis.call('GET', KEYS[1])
if not gen then
	gen = '0'
end
if gen ~= ARGV[1] then
	return 0
end

local ttl = tonumber(ARGV[4])
if ttl > 0 then
	redis.call('SET', ARGV[2], ARGV[3], 'PX', ttl)
else
	redis.call('SET', ARGV[2], ARGV[3])
end
return 1
`)

type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

func (r *RedisAdapter) Get(ctx context.Context, key string) ([]byte, bool, error) {
	result, err := getCurrentScript.Run(ctx, r.client, []string{generationCacheKey}, cacheKeyPrefix, key).Text()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return []byte(result), true, nil
}

func (r *RedisAdapter) Set(ctx context.Context, gen int64, key string, value []byte, ttl time.Duration) error {
	return setCurrentScript.Run(ctx, r.client, []string{generationCacheKey},
		strconv.FormatInt(gen, 10), generationKey(gen, key), value, ttl.Milliseconds()).Err()
}

func (r *RedisAdapter) Generation(ctx context.Context) (int64, error) {
	return r.generation(ctx)
}

// Invalidate advances the generation; stale entries age out through their TTL.
func (r *RedisAdapter) Invalidate(ctx context.Context) error {
	return r.client.Incr(ctx, generationCacheKey).Err()
}

func (r *RedisAdapter) generation(ctx context.Context) (int64, error) {
	gen, err := r.client.Get(ctx, generationCacheKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func generationKey(gen int64, key string) string {
	return cacheKeyPrefix + strconv.FormatInt(gen, 10) + ":" + key
}
