// Package ratelimit enforces the per-tenant request ceiling: a runaway
// tenant must not starve others, so each tenant owns an independent
// token bucket rather than sharing one global limiter.
package ratelimit

import (
	"sync"

	"golang.org/x/time/rate"
)

// Limiter owns one token bucket per tenant, created lazily on first use.
type Limiter struct {
	mu           sync.Mutex
	perTenant    map[string]*rate.Limiter
	ratePerMin   int
	burst        int
}

// New builds a Limiter with the given per-tenant requests-per-minute
// ceiling and burst allowance.
func New(requestsPerMinute, burst int) *Limiter {
	return &Limiter{
		perTenant:  make(map[string]*rate.Limiter),
		ratePerMin: requestsPerMinute,
		burst:      burst,
	}
}

// Allow reports whether tenant may proceed with one more request right
// now, consuming a token if so.
func (l *Limiter) Allow(tenant string) bool {
	return l.limiterFor(tenant).Allow()
}

func (l *Limiter) limiterFor(tenant string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.perTenant[tenant]
	if !ok {
		perSecond := float64(l.ratePerMin) / 60.0
		lim = rate.NewLimiter(rate.Limit(perSecond), l.burst)
		l.perTenant[tenant] = lim
	}
	return lim
}
