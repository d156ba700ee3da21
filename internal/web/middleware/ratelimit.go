package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/JonMunkholm/staffdir/internal/core"
	"github.com/JonMunkholm/staffdir/internal/logging"
)

// ErrRateLimited is mapped to RATE001 for the client.
var ErrRateLimited = errors.New("rate limit exceeded")

const (
	// idleTTL is how long an unused client bucket is kept.
	idleTTL = 10 * time.Minute
	// pruneEvery bounds how often the bucket map is swept.
	pruneEvery = time.Minute
)

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter is a per-IP token bucket. Each client may burst a full
// minute's quota, which then refills evenly over the minute.
type RateLimiter struct {
	limit     rate.Limit
	perMinute int

	mu        sync.Mutex
	clients   map[string]*clientBucket
	lastPrune time.Time
	now       func() time.Time
}

// NewRateLimiter allows perMinute requests per client IP per minute.
func NewRateLimiter(perMinute int) *RateLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	return &RateLimiter{
		limit:     rate.Limit(float64(perMinute) / 60),
		perMinute: perMinute,
		clients:   make(map[string]*clientBucket),
		now:       time.Now,
	}
}

// Allow reports whether key may make a request now.
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastPrune) >= pruneEvery {
		l.prune(now)
	}

	b, ok := l.clients[key]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(l.limit, l.perMinute)}
		l.clients[key] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

// prune drops idle buckets. Caller holds l.mu.
func (l *RateLimiter) prune(now time.Time) {
	for key, b := range l.clients {
		if now.Sub(b.lastSeen) > idleTTL {
			delete(l.clients, key)
		}
	}
	l.lastPrune = now
}

// Len returns the number of tracked clients.
func (l *RateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// retryAfter is the time for one token to refill, in whole seconds.
func (l *RateLimiter) retryAfter() int {
	return (60 + l.perMinute - 1) / l.perMinute
}

// Handler rejects requests over the limit with 429 and a Retry-After header.
func (l *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := ClientIP(r)
		if l.Allow(ip) {
			next.ServeHTTP(w, r)
			return
		}

		logging.FromContext(r.Context()).Warn("rate limited", "ip", ip, "path", r.URL.Path)

		msg := core.MapError(ErrRateLimited)
		w.Header().Set("Retry-After", strconv.Itoa(l.retryAfter()))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]string{
			"error":   msg.Message,
			"message": msg.Message,
			"action":  msg.Action,
			"code":    msg.Code,
		})
	})
}
