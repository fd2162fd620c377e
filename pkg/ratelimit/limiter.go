package ratelimit

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

const (
	maxKeys = 10000
	keyTTL  = 10 * time.Minute
)

// limiter keeps one token bucket per key. Idle buckets expire from the LRU.
type limiter struct {
	mu       sync.Mutex
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func NewLimiter(requestsPerMin int) *limiter {
	return &limiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](maxKeys, nil, keyTTL),
		rate:     rate.Limit(float64(requestsPerMin) / 60.0),
		burst:    max(requestsPerMin/5, 1),
	}
}

func (l *limiter) Allow(key string) bool {
	l.mu.Lock()
	bucket, ok := l.limiters.Get(key)
	if !ok {
		bucket = rate.NewLimiter(l.rate, l.burst)
		l.limiters.Add(key, bucket)
	}
	l.mu.Unlock()

	return bucket.Allow()
}
