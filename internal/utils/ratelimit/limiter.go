// Package ratelimit guards the expensive pack endpoint with per-client token buckets.
// A pack run reads the whole CMS membership, so the default budget is a few runs per minute.
package ratelimit

import (
	"math"
	"sync"
	"time"
)

// Limiter is the token bucket of one client in one category.
// Tokens are added at a fixed rate and each admitted request consumes one.
type Limiter struct {
	// tokens is the current number of tokens in the bucket
	tokens float64

	// lastTime is the last time tokens were added to the bucket
	lastTime time.Time

	// lastSeen is the last time the client asked for a token
	lastSeen time.Time

	// rate is the token refill rate (tokens per second)
	rate float64

	// capacity is the maximum number of tokens the bucket can hold
	capacity float64

	// now is the clock, replaced in tests
	now func() time.Time

	mu sync.Mutex
}

// Rate controls how many requests per second are allowed
type Rate struct {
	// RequestsPerSecond defines how many tokens are added per second
	RequestsPerSecond float64

	// Burst defines the maximum size of the token bucket
	Burst int
}

// NewLimiter creates a full bucket refilled at rate tokens per second.
func NewLimiter(rate float64, burst int) *Limiter {
	return newLimiterWithClock(rate, burst, time.Now)
}

func newLimiterWithClock(rate float64, burst int, now func() time.Time) *Limiter {
	t := now()
	return &Limiter{
		tokens:   float64(burst),
		lastTime: t,
		lastSeen: t,
		rate:     rate,
		capacity: float64(burst),
		now:      now,
	}
}

// refill must be called with mu held
func (l *Limiter) refill() time.Time {
	now := l.now()
	elapsed := now.Sub(l.lastTime).Seconds()
	l.lastTime = now
	l.lastSeen = now

	l.tokens += elapsed * l.rate
	if l.tokens > l.capacity {
		l.tokens = l.capacity
	}
	return now
}

// Allow reports whether a request may proceed and consumes a token when it may.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill()

	if l.tokens < 1 {
		return false
	}

	l.tokens--
	return true
}

// RetryAfter returns how long until the next token is available.
// It is zero when a request would be admitted now and negative when the
// bucket never refills.
func (l *Limiter) RetryAfter() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill()

	if l.tokens >= 1 {
		return 0
	}
	if l.rate <= 0 {
		return -1
	}

	missing := 1 - l.tokens
	return time.Duration(math.Ceil(missing / l.rate * float64(time.Second)))
}

// IdleSince reports when the client last asked for a token.
func (l *Limiter) IdleSince() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastSeen
}

// ResetTokens refills the bucket to capacity.
func (l *Limiter) ResetTokens() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tokens = l.capacity
	l.lastTime = l.now()
}
