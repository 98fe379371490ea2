package service

import (
	"sync"
	"time"
)

// LoginThrottle is an in-memory per-key rate limiter using the token bucket
// algorithm, used to slow down credential guessing against the login and
// registration endpoints. It is safe for concurrent use; stale buckets are
// cleaned up in the background.
type LoginThrottle struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	rate     float64 // tokens added per second
	capacity float64 // maximum tokens
	done     chan struct{}
}

type bucket struct {
	tokens float64
	last   time.Time
}

// NewLoginThrottle creates a throttle that allows up to capacity attempts
// per key, refilling at the given rate (attempts per second). It starts a
// background goroutine that periodically removes stale buckets; call Stop
// to end it.
func NewLoginThrottle(rate, capacity float64) *LoginThrottle {
	lt := &LoginThrottle{
		buckets:  make(map[string]*bucket),
		rate:     rate,
		capacity: capacity,
		done:     make(chan struct{}),
	}
	go lt.cleanup()
	return lt
}

// Allow reports whether the given key may attempt another login. Each call
// consumes one token; false means the bucket is empty.
func (lt *LoginThrottle) Allow(key string) bool {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	b, ok := lt.buckets[key]
	if !ok {
		b = &bucket{tokens: lt.capacity, last: time.Now()}
		lt.buckets[key] = b
	}

	now := time.Now()
	elapsed := now.Sub(b.last).Seconds()
	b.tokens = min(b.tokens+elapsed*lt.rate, lt.capacity)
	b.last = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Stop ends the background cleanup goroutine.
func (lt *LoginThrottle) Stop() {
	close(lt.done)
}

// cleanup removes buckets that haven't been touched in 10 minutes.
func (lt *LoginThrottle) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-lt.done:
			return
		case <-ticker.C:
			lt.mu.Lock()
			cutoff := time.Now().Add(-10 * time.Minute)
			for key, b := range lt.buckets {
				if b.last.Before(cutoff) {
					delete(lt.buckets, key)
				}
			}
			lt.mu.Unlock()
		}
	}
}
