// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"
)

const (
	maxTrackedClients = 10000
	idleClientTTL     = 10 * time.Minute
)

var rateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "judge",
	Subsystem: "http",
	Name:      "rate_limited_total",
	Help:      "Requests rejected by the per-client rate limit",
}, []string{"route"})

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientLimiter keeps one token bucket per client address. When the table
// is full, idle buckets are dropped first, then the least recently seen one.
type ClientLimiter struct {
	limit rate.Limit
	burst int
	max   int
	idle  time.Duration
	now   func() time.Time

	// ClientKey picks the address a request is charged to
	ClientKey func(r *http.Request) string

	mu      sync.Mutex
	clients map[string]*clientBucket
}

// NewClientLimiter charges each request to the connection's remote host.
// Forwarded headers are ignored unless TrustForwarded is called.
func NewClientLimiter(limit rate.Limit, burst int) *ClientLimiter {
	return &ClientLimiter{
		limit:     limit,
		burst:     burst,
		max:       maxTrackedClients,
		idle:      idleClientTTL,
		now:       time.Now,
		ClientKey: RemoteHost,
		clients:   make(map[string]*clientBucket),
	}
}

// TrustForwarded charges requests to the X-Forwarded-For client instead.
// Only use it behind a proxy that overwrites the header.
func (c *ClientLimiter) TrustForwarded() *ClientLimiter {
	c.ClientKey = GetClientIP
	return c
}

// Allow takes a token from the client's bucket
func (c *ClientLimiter) Allow(client string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	b, ok := c.clients[client]
	if !ok {
		if len(c.clients) >= c.max {
			c.evict(now)
		}
		b = &clientBucket{limiter: rate.NewLimiter(c.limit, c.burst)}
		c.clients[client] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

// evict frees room for one client. Callers hold mu.
func (c *ClientLimiter) evict(now time.Time) {
	var oldest string
	var oldestSeen time.Time
	for key, b := range c.clients {
		if now.Sub(b.lastSeen) > c.idle {
			delete(c.clients, key)
			continue
		}
		if oldest == "" || b.lastSeen.Before(oldestSeen) {
			oldest, oldestSeen = key, b.lastSeen
		}
	}
	if len(c.clients) >= c.max {
		delete(c.clients, oldest)
	}
}

// WithRateLimit answers 429 once a client exceeds its budget on route
func WithRateLimit(route string, limiter *ClientLimiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow(limiter.ClientKey(r)) {
			rateLimited.WithLabelValues(route).Inc()
			slog.Warn("rate limited", "route", route)
			w.Header().Set("Retry-After", "1")
			ErrorResponse(w, http.StatusTooManyRequests, "Too many submissions, slow down")
			return
		}
		next(w, r)
	}
}
