package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/geotask-api/internal/config"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func serve(h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/tasks/nearby", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRateLimiter(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	rl := newRateLimiter(3, 15*time.Minute, clock.Now)
	h := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, serve(h, "10.0.0.1:5000").Code)
	}

	blocked := serve(h, "10.0.0.1:5001")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.NotEmpty(t, blocked.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, serve(h, "10.0.0.2:5000").Code, "limits are per client IP")

	clock.Advance(5 * time.Minute)
	assert.Equal(t, http.StatusOK, serve(h, "10.0.0.1:5000").Code, "one token refills per window/requests")
	assert.Equal(t, http.StatusTooManyRequests, serve(h, "10.0.0.1:5000").Code)
}

func TestNewRateLimiterDisabled(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(config.RateLimitConfig{Enabled: false, Requests: 1, Window: time.Minute})
	assert.Nil(t, rl)

	h := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, serve(h, "10.0.0.1:5000").Code)
	}
}
