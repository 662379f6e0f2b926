// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	rateLimitIdleTTL      = 10 * time.Minute
	rateLimitEvictionHits = 512
)

var _ Wrapper = (*RateLimiter)(nil)

// RateLimiter applies a token bucket per client IP.
type RateLimiter struct {
	limit rate.Limit
	burst int

	lock    sync.Mutex
	clients map[string]*rateLimitEntry
	hits    uint64
}

type rateLimitEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter returns nil, which allows everything, when [rps] or [burst]
// is not positive.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if rps <= 0 || burst <= 0 {
		return nil
	}
	return &RateLimiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		clients: make(map[string]*rateLimitEntry),
	}
}

// Allow reports whether [key] may make one more request at [now].
func (l *RateLimiter) Allow(key string, now time.Time) bool {
	if l == nil {
		return true
	}
	l.lock.Lock()
	defer l.lock.Unlock()

	entry, ok := l.clients[key]
	if !ok {
		entry = &rateLimitEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = entry
	}
	entry.lastSeen = now
	allowed := entry.limiter.AllowN(now, 1)

	l.hits++
	if l.hits%rateLimitEvictionHits == 0 {
		cutoff := now.Add(-rateLimitIdleTTL)
		for k, v := range l.clients {
			if v.lastSeen.Before(cutoff) {
				delete(l.clients, k)
			}
		}
	}
	return allowed
}

func (l *RateLimiter) WrapHandler(h http.Handler) http.Handler {
	if l == nil {
		return h
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(clientKey(r), time.Now()) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		h.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
