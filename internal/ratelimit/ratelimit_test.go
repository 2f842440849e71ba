// File: internal/ratelimit/ratelimit_test.go
package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T) *MemoryRateLimiter {
	t.Helper()
	limiter := NewMemoryRateLimiter(&Config{
		WindowSize:    time.Minute,
		MaxAttempts:   3,
		CleanupPeriod: time.Hour,
		BanDuration:   time.Minute,
	})
	t.Cleanup(limiter.Close)
	return limiter
}

func TestAllow_WithinLimit(t *testing.T) {
	limiter := newTestLimiter(t)

	for i := 0; i < 3; i++ {
		allowed, info := limiter.Allow("1.2.3.4")
		assert.True(t, allowed)
		assert.Equal(t, 2-i, info.Remaining)
	}
}

func TestAllow_BansAfterLimit(t *testing.T) {
	limiter := newTestLimiter(t)

	for i := 0; i < 3; i++ {
		allowed, _ := limiter.Allow("1.2.3.4")
		require.True(t, allowed)
	}

	allowed, info := limiter.Allow("1.2.3.4")
	assert.False(t, allowed)
	assert.True(t, info.Banned)
	assert.Positive(t, info.RetryAfter)
}

func TestAllow_IdentifiersIndependent(t *testing.T) {
	limiter := newTestLimiter(t)

	for i := 0; i < 4; i++ {
		limiter.Allow("1.2.3.4")
	}

	allowed, _ := limiter.Allow("5.6.7.8")
	assert.True(t, allowed)
}

func TestRecordSuccess_ResetsCounter(t *testing.T) {
	limiter := newTestLimiter(t)

	for i := 0; i < 3; i++ {
		limiter.Allow("1.2.3.4")
	}
	limiter.RecordSuccess("1.2.3.4")

	allowed, info := limiter.Allow("1.2.3.4")
	assert.True(t, allowed)
	assert.Equal(t, 2, info.Remaining)
}

func TestGetClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:4321"
	assert.Equal(t, "10.0.0.1", GetClientIP(r))

	r.Header.Set("X-Real-IP", "203.0.113.9")
	assert.Equal(t, "203.0.113.9", GetClientIP(r))

	r.Header.Set("X-Forwarded-For", "198.51.100.7, 10.0.0.1")
	assert.Equal(t, "198.51.100.7", GetClientIP(r))
}
