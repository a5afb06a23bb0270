// Package ratelimit provides an in-memory sliding window limiter for the
// public scan endpoints. Per-process only; a shared deployment would back
// this with Redis.
package ratelimit

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"scanid/internal/platform/middleware"
)

// Limiter tracks request timestamps per key using a sliding window. The
// sliding window avoids the burst-at-boundary problem of fixed windows.
type Limiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	buckets map[string]*slidingWindow
}

type slidingWindow struct {
	timestamps []time.Time
}

// New creates a Limiter allowing limit requests per window per key.
func New(limit int, window time.Duration) *Limiter {
	return &Limiter{
		limit:   limit,
		window:  window,
		buckets: make(map[string]*slidingWindow),
	}
}

// Allow reports whether a request for key is within the limit and consumes
// one slot if so. It also returns the remaining budget.
func (l *Limiter) Allow(key string) (allowed bool, remaining int) {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	sw := l.buckets[key]
	if sw == nil {
		sw = &slidingWindow{}
		l.buckets[key] = sw
	}
	sw.cleanup(now.Add(-l.window))

	if len(sw.timestamps) >= l.limit {
		return false, 0
	}
	sw.timestamps = append(sw.timestamps, now)
	return true, l.limit - len(sw.timestamps)
}

// Reset clears the counter for a key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, key)
}

func (sw *slidingWindow) cleanup(cutoff time.Time) {
	i := 0
	for ; i < len(sw.timestamps); i++ {
		if sw.timestamps[i].After(cutoff) {
			break
		}
	}
	sw.timestamps = sw.timestamps[i:]
}

// Middleware enforces the limiter keyed by authenticated organization, falling
// back to the remote address for unauthenticated routes.
func Middleware(l *Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.RemoteAddr
			if orgID := middleware.GetOrganizationID(r.Context()); !orgID.IsNil() {
				key = orgID.String()
			}

			allowed, remaining := l.Allow(key)
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			if !allowed {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"rate_limited","error_description":"too many requests"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
