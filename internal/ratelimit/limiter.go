// Package ratelimit throttles outbound requests per target host so repeated
// fetches against one site stay polite.
package ratelimit

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiter gates requests by target URL, typically per host.
type RateLimiter interface {
	// Wait blocks until a request for the given URL may proceed, or the
	// context is cancelled.
	Wait(ctx context.Context, urlStr string) error

	// Allow reports whether a request for the given URL may proceed right
	// now without blocking.
	Allow(urlStr string) bool
}

// HostLimiter applies a token bucket per host. Unparseable URLs share one
// bucket under an empty-host key rather than bypassing the limiter.
type HostLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	perHost  rate.Limit
	burst    int
}

// NewHostLimiter creates a limiter allowing requestsPerSecond per host with
// the given burst capacity.
func NewHostLimiter(requestsPerSecond float64, burst int) *HostLimiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 5.0
	}
	if burst <= 0 {
		burst = 10
	}
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		perHost:  rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

// Wait blocks until the host's bucket has a token.
func (hl *HostLimiter) Wait(ctx context.Context, urlStr string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return hl.limiterFor(urlStr).Wait(ctx)
}

// Allow reports whether the host's bucket has a token right now.
func (hl *HostLimiter) Allow(urlStr string) bool {
	return hl.limiterFor(urlStr).Allow()
}

func (hl *HostLimiter) limiterFor(urlStr string) *rate.Limiter {
	host := hostOf(urlStr)

	hl.mu.RLock()
	limiter, ok := hl.limiters[host]
	hl.mu.RUnlock()
	if ok {
		return limiter
	}

	hl.mu.Lock()
	defer hl.mu.Unlock()
	if limiter, ok = hl.limiters[host]; ok {
		return limiter
	}
	limiter = rate.NewLimiter(hl.perHost, hl.burst)
	hl.limiters[host] = limiter
	return limiter
}

func hostOf(urlStr string) string {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return parsed.Hostname()
}
