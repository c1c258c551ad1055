package fetch

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// Per-host limiter shared across all adapters in the process: schedule
// requests and second-hop resolutions for the same upstream queue behind one
// budget, so a burst of page renders can't trip the site's rate limits.
const (
	hostRequestsPerSecond = 2
	hostBurst             = 4
)

var hostLimiters = struct {
	mu sync.Mutex
	m  map[string]*rate.Limiter
}{m: make(map[string]*rate.Limiter)}

func limiterFor(rawURL string) *rate.Limiter {
	host := hostOf(rawURL)
	hostLimiters.mu.Lock()
	defer hostLimiters.mu.Unlock()
	l, ok := hostLimiters.m[host]
	if !ok {
		l = rate.NewLimiter(rate.Limit(hostRequestsPerSecond), hostBurst)
		hostLimiters.m[host] = l
	}
	return l
}

func waitHost(ctx context.Context, rawURL string) error {
	return limiterFor(rawURL).Wait(ctx)
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}
