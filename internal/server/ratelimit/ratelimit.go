// Package ratelimit throttles API clients by request cost class. Pipeline
// runs burn LLM quota and publish slots, analytics jobs hit the database
// hard, reads are cheap; each class gets its own token-bucket budget per
// client, so a burst of publishes cannot starve a client's own reads.
package ratelimit

import (
	"sync"
	"time"
)

// Class is a request cost class. Every route resolves to exactly one.
type Class string

const (
	// ClassPipeline covers full pipeline runs (publish and its SSE
	// variant share one budget; streaming is not a side door).
	ClassPipeline Class = "pipeline"
	// ClassAnalytics covers metric collection and strategy analysis.
	ClassAnalytics Class = "analytics"
	// ClassRead covers run history, summaries, and other cheap GETs.
	ClassRead Class = "read"
	// ClassExempt is never throttled (health checks).
	ClassExempt Class = "exempt"
)

// Budget is the per-client allowance for one class.
type Budget struct {
	Limit  int           // Requests per window
	Window time.Duration // Refill window
	Burst  int           // Bucket capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	Budgets         map[Class]Budget
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
}

// bucket is a token bucket refilling at a steady rate.
type bucket struct {
	mu         sync.Mutex
	capacity   float64
	perSecond  float64
	tokens     float64
	lastRefill time.Time
}

func newBucket(b Budget) *bucket {
	capacity := b.Burst
	if capacity <= 0 {
		capacity = b.Limit
	}
	return &bucket{
		capacity:   float64(capacity),
		perSecond:  float64(b.Limit) / b.Window.Seconds(),
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

func (b *bucket) refillLocked(now time.Time) {
	b.tokens += now.Sub(b.lastRefill).Seconds() * b.perSecond
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.lastRefill = now
}

// take consumes one token if available.
func (b *bucket) take() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refillLocked(time.Now())
	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// status reports remaining tokens and when the bucket refills completely.
func (b *bucket) status() (remaining int, resetAt time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := time.Now()
	b.refillLocked(now)
	remaining = int(b.tokens)
	if b.tokens >= b.capacity {
		return remaining, now
	}
	missing := b.capacity - b.tokens
	return remaining, now.Add(time.Duration(missing / b.perSecond * float64(time.Second)))
}

// Info describes the rate limit state returned with every decision.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Limiter tracks one bucket per (client, class) pair.
type Limiter struct {
	config *Config

	mu      sync.RWMutex
	buckets map[string]*bucket

	accessMu   sync.Mutex
	lastAccess map[string]time.Time

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
}

// NewLimiter creates a limiter over config. A nil config means defaults.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			Budgets:         DefaultBudgets(),
			CleanupInterval: 5 * time.Minute,
			Whitelist:       make(map[string]bool),
			Blacklist:       make(map[string]bool),
		}
	}

	l := &Limiter{
		config:     config,
		buckets:    make(map[string]*bucket),
		lastAccess: make(map[string]time.Time),
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.cleanupTicker = time.NewTicker(config.CleanupInterval)
		l.cleanupStop = make(chan struct{})
		go l.cleanupLoop()
	}

	return l
}

// Allow decides whether the client may make this request. The path and
// method resolve to a cost class; the client's bucket for that class is
// charged one token.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{}
	}

	class := Classify(path, method)
	budget, ok := l.config.Budgets[class]
	if class == ClassExempt || !ok || budget.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	key := clientID + ":" + string(class)
	b := l.bucketFor(key, budget)

	l.accessMu.Lock()
	l.lastAccess[key] = time.Now()
	l.accessMu.Unlock()

	allowed := b.take()
	remaining, resetAt := b.status()

	var retryAfter time.Duration
	if !allowed {
		if retryAfter = time.Until(resetAt); retryAfter < 0 {
			retryAfter = 0
		}
	}

	return allowed, Info{
		Allowed:    allowed,
		Limit:      budget.Limit,
		Remaining:  remaining,
		ResetTime:  resetAt,
		RetryAfter: retryAfter,
	}
}

func (l *Limiter) bucketFor(key string, budget Budget) *bucket {
	l.mu.RLock()
	b, ok := l.buckets[key]
	l.mu.RUnlock()
	if ok {
		return b
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, ok := l.buckets[key]; ok {
		return existing
	}
	b = newBucket(budget)
	l.buckets[key] = b
	return b
}

func (l *Limiter) cleanupLoop() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.dropIdleBuckets(time.Now().Add(-time.Hour))
		case <-l.cleanupStop:
			return
		}
	}
}

// dropIdleBuckets removes buckets idle since before cutoff.
func (l *Limiter) dropIdleBuckets(cutoff time.Time) {
	l.accessMu.Lock()
	idle := make([]string, 0)
	for key, last := range l.lastAccess {
		if last.Before(cutoff) {
			idle = append(idle, key)
			delete(l.lastAccess, key)
		}
	}
	l.accessMu.Unlock()

	l.mu.Lock()
	for _, key := range idle {
		delete(l.buckets, key)
	}
	l.mu.Unlock()
}

// Stop ends the cleanup goroutine.
func (l *Limiter) Stop() {
	if l.cleanupTicker != nil {
		l.cleanupTicker.Stop()
	}
	if l.cleanupStop != nil {
		close(l.cleanupStop)
	}
}
