package utils

import (
	"sync"
	"time"
)

// RateLimiter 令牌桶限流 按key(角色uid)分别计数
type RateLimiter struct {
	mu       sync.Mutex
	rate     float64 // 每秒补充的令牌数
	capacity float64 // 桶容量
	buckets  map[string]*bucket
	now      func() time.Time
}

type bucket struct {
	tokens     float64
	lastRefill time.Time
}

// NewRateLimiter rate: 每秒允许的请求数 burst: 允许的突发请求数
func NewRateLimiter(rate int, burst int) *RateLimiter {
	return &RateLimiter{
		rate:     float64(rate),
		capacity: float64(burst),
		buckets:  make(map[string]*bucket),
		now:      time.Now,
	}
}

// Allow 判断key的本次请求是否允许通过
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	now := rl.now()
	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{tokens: rl.capacity, lastRefill: now}
		rl.buckets[key] = b
	}
	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens = min(rl.capacity, b.tokens+elapsed*rl.rate)
	b.lastRefill = now
	if b.tokens >= 1.0 {
		b.tokens -= 1.0
		return true
	}
	return false
}

// Forget 角色下线后清理
func (rl *RateLimiter) Forget(key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.buckets, key)
}
