package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// MemoryStore keeps sliding-window request logs in process memory
type MemoryStore struct {
	mu        sync.Mutex
	hits      map[string][]time.Time
	lastSweep time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{hits: make(map[string][]time.Time)}
}

// Take implements RateLimitStore
func (s *MemoryStore) Take(_ context.Context, key string, limit int, window time.Duration, now time.Time) (RateLimitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := now.Add(-window)
	if now.Sub(s.lastSweep) >= window {
		s.sweep(cutoff)
		s.lastSweep = now
	}

	hits := prune(s.hits[key], cutoff)
	allowed := len(hits) < limit
	if allowed {
		hits = append(hits, now)
	}
	s.hits[key] = hits

	remaining := limit - len(hits)
	if remaining < 0 {
		remaining = 0
	}

	return RateLimitResult{
		Allowed:   allowed,
		Remaining: remaining,
		ResetAt:   hits[0].Add(window),
	}, nil
}

// sweep drops keys whose requests have all left the window
func (s *MemoryStore) sweep(cutoff time.Time) {
	for key, hits := range s.hits {
		if len(prune(hits, cutoff)) == 0 {
			delete(s.hits, key)
		}
	}
}

// prune removes timestamps at or before cutoff; hits are in ascending order
func prune(hits []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}
	return hits[i:]
}

// slidingWindowScript trims the window, adds the request if there is room,
// and returns {allowed, count, oldest score in ms}.
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)
local allowed = 0
if count < limit then
	redis.call('ZADD', key, now, ARGV[4])
	count = count + 1
	allowed = 1
end
redis.call('PEXPIRE', key, window)

local oldest = now
local first = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
if first[2] then
	oldest = tonumber(first[2])
end
return {allowed, count, oldest}
`)

// RedisStore keeps sliding-window request logs in Redis sorted sets, shared across instances
type RedisStore struct {
	redis *redis.Client
}

// NewRedisStore creates a store backed by the given client
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{redis: client}
}

// Take implements RateLimitStore
func (s *RedisStore) Take(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (RateLimitResult, error) {
	nowMs := now.UnixMilli()
	vals, err := slidingWindowScript.Run(ctx, s.redis, []string{key},
		nowMs, window.Milliseconds(), limit, uuid.New().String()).Int64Slice()
	if err != nil {
		return RateLimitResult{}, fmt.Errorf("failed to run rate limit script: %w", err)
	}
	if len(vals) != 3 {
		return RateLimitResult{}, fmt.Errorf("unexpected rate limit script result: %v", vals)
	}

	remaining := limit - int(vals[1])
	if remaining < 0 {
		remaining = 0
	}

	return RateLimitResult{
		Allowed:   vals[0] == 1,
		Remaining: remaining,
		ResetAt:   time.UnixMilli(vals[2]).Add(window),
	}, nil
}
