package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisAttemptLimiter counts code issuances per phone in Redis with an
// expiring key. The window starts at the first attempt, which is slightly
// stricter than a true rolling window for bursts near the boundary.
type RedisAttemptLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewRedisAttemptLimiter creates a limiter allowing limit attempts per window.
func NewRedisAttemptLimiter(client *redis.Client, limit int64, window time.Duration) *RedisAttemptLimiter {
	return &RedisAttemptLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

func (l *RedisAttemptLimiter) Allow(ctx context.Context, phone string) (bool, error) {
	key := "sms_code_attempts:" + phone
	attempts, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}

	// Set expiry if first attempt
	if attempts == 1 {
		l.client.Expire(ctx, key, l.window)
	}

	return attempts <= l.limit, nil
}

// MemoryAttemptLimiter enforces the same cap over a true rolling window,
// tracked in process memory. Used when Redis is unavailable and in tests.
type MemoryAttemptLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	limit    int
	window   time.Duration
	now      func() time.Time
}

// NewMemoryAttemptLimiter creates an in-memory limiter allowing limit
// attempts per rolling window.
func NewMemoryAttemptLimiter(limit int, window time.Duration) *MemoryAttemptLimiter {
	return &MemoryAttemptLimiter{
		attempts: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		now:      time.Now,
	}
}

func (l *MemoryAttemptLimiter) Allow(_ context.Context, phone string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	live := l.attempts[phone][:0]
	for _, t := range l.attempts[phone] {
		if t.After(cutoff) {
			live = append(live, t)
		}
	}

	if len(live) >= l.limit {
		l.attempts[phone] = live
		return false, nil
	}

	l.attempts[phone] = append(live, now)
	return true, nil
}
