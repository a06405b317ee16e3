package ratelimit

import (
	"sync"
	"time"
)

// Per-user action budgets. Room creation is capped much harder than message
// sending: every room maps to a first contact about a listing.
const (
	messageBurst  = 10
	messageRefill = 6 * time.Second
	roomBurst     = 5
	roomRefill    = 12 * time.Minute
	defaultBurst  = 20
	defaultRefill = 3 * time.Second
)

// tokenBucket guards a single user action.
type tokenBucket struct {
	mu         sync.Mutex
	tokens     int
	maxTokens  int
	refillTime time.Duration
	lastRefill time.Time
}

func newTokenBucket(maxTokens int, refillTime time.Duration) *tokenBucket {
	return &tokenBucket{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillTime: refillTime,
		lastRefill: time.Now(),
	}
}

// take consumes a token when one is available; otherwise it reports how long
// the caller has to wait for the next one.
func (tb *tokenBucket) take() (bool, time.Duration) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	refills := int(now.Sub(tb.lastRefill) / tb.refillTime)
	if refills > 0 {
		tb.tokens += refills
		if tb.tokens > tb.maxTokens {
			tb.tokens = tb.maxTokens
		}
		tb.lastRefill = now
	}

	if tb.tokens > 0 {
		tb.tokens--
		return true, 0
	}

	return false, tb.lastRefill.Add(tb.refillTime).Sub(now)
}

// RateLimiter tracks one token bucket per user and action.
type RateLimiter struct {
	mu      sync.RWMutex
	buckets map[string]*tokenBucket
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		buckets: make(map[string]*tokenBucket),
	}
}

func bucketFor(action string) *tokenBucket {
	switch action {
	case "send_message":
		return newTokenBucket(messageBurst, messageRefill)
	case "create_chat":
		return newTokenBucket(roomBurst, roomRefill)
	default:
		return newTokenBucket(defaultBurst, defaultRefill)
	}
}

// Allow checks the user's budget for the action, creating the bucket on
// first use. When the budget is exhausted it returns the wait until the next
// token.
func (rl *RateLimiter) Allow(userID, action string) (bool, time.Duration) {
	key := userID + ":" + action

	rl.mu.RLock()
	bucket, ok := rl.buckets[key]
	rl.mu.RUnlock()

	if !ok {
		rl.mu.Lock()
		if bucket, ok = rl.buckets[key]; !ok {
			bucket = bucketFor(action)
			rl.buckets[key] = bucket
		}
		rl.mu.Unlock()
	}

	return bucket.take()
}

// Cleanup drops buckets that have been idle for over an hour.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for key, bucket := range rl.buckets {
		bucket.mu.Lock()
		idle := now.Sub(bucket.lastRefill) > time.Hour
		bucket.mu.Unlock()
		if idle {
			delete(rl.buckets, key)
		}
	}
}

// StartCleanupRoutine removes idle buckets in the background.
func (rl *RateLimiter) StartCleanupRoutine() {
	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			rl.Cleanup()
		}
	}()
}
