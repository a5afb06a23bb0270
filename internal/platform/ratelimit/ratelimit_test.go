package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiter_Allow(t *testing.T) {
	t.Run("allows up to limit", func(t *testing.T) {
		l := New(3, time.Minute)

		for i := 0; i < 3; i++ {
			allowed, _ := l.Allow("org-a")
			assert.True(t, allowed, "request %d should be allowed", i)
		}
		allowed, remaining := l.Allow("org-a")
		assert.False(t, allowed)
		assert.Equal(t, 0, remaining)
	})

	t.Run("keys are independent", func(t *testing.T) {
		l := New(1, time.Minute)

		allowed, _ := l.Allow("org-a")
		assert.True(t, allowed)
		allowed, _ = l.Allow("org-b")
		assert.True(t, allowed)
		allowed, _ = l.Allow("org-a")
		assert.False(t, allowed)
	})

	t.Run("window expiry frees budget", func(t *testing.T) {
		l := New(1, 10*time.Millisecond)

		allowed, _ := l.Allow("org-a")
		assert.True(t, allowed)
		allowed, _ = l.Allow("org-a")
		assert.False(t, allowed)

		time.Sleep(15 * time.Millisecond)
		allowed, _ = l.Allow("org-a")
		assert.True(t, allowed)
	})

	t.Run("reset clears counter", func(t *testing.T) {
		l := New(1, time.Minute)
		_, _ = l.Allow("org-a")
		l.Reset("org-a")
		allowed, _ := l.Allow("org-a")
		assert.True(t, allowed)
	})
}

func TestMiddleware(t *testing.T) {
	l := New(1, time.Minute)
	handler := Middleware(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/scan", nil)
	req.RemoteAddr = "10.0.0.1:1234"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
}
