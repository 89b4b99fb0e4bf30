// Package throttle provides request admission control: a TTL counter
// service keyed by (route type, key) and a keyed token-bucket limiter for
// the upstream generator.
package throttle

import (
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Decision is the outcome of a counter check
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration // populated when denied
}

// Counter is a fixed-window request counter with a TTL per (route, key)
// pair. The window is anchored at the first request of the pair.
type Counter struct {
	counts *gocache.Cache
	limit  int
	window time.Duration

	mu sync.Mutex
}

// NewCounter creates a counter allowing limit requests per window
func NewCounter(limit int, window time.Duration) *Counter {
	if limit <= 0 {
		limit = 20
	}
	if window <= 0 {
		window = time.Minute
	}
	return &Counter{
		counts: gocache.New(window, 5*time.Minute),
		limit:  limit,
		window: window,
	}
}

// Allow records one request for (route, key) and reports whether it is
// within the limit, along with the remaining quota and, when denied, how
// long until the window resets.
func (c *Counter) Allow(route, key string) Decision {
	c.mu.Lock()
	defer c.mu.Unlock()

	cacheKey := fmt.Sprintf("%s:%s", route, key)
	val, expiry, found := c.counts.GetWithExpiration(cacheKey)
	if !found {
		c.counts.Set(cacheKey, 1, c.window)
		return Decision{Allowed: true, Remaining: c.limit - 1}
	}

	n := val.(int)
	retryAfter := time.Until(expiry)
	if retryAfter <= 0 {
		retryAfter = c.window
	}

	if n >= c.limit {
		return Decision{Allowed: false, Remaining: 0, RetryAfter: retryAfter}
	}

	c.counts.Set(cacheKey, n+1, retryAfter)
	return Decision{Allowed: true, Remaining: c.limit - n - 1}
}
