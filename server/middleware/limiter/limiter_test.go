// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func serve(l *Limiter, remote, path string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, path, nil)
	r.RemoteAddr = remote

	w := httptest.NewRecorder()
	l.Evaluate(w, r, okHandler)

	return w
}

func testOptions() Options {
	return Options{
		Rate:       0.5,
		Burst:      2,
		IPv4Prefix: 24,
		IPv6Prefix: 48,
		PassIPs:    []string{"198.51.100.0/24"},
		BlockIPs:   []string{"192.0.2.66"},
	}
}

func TestEvaluate_Burst(t *testing.T) {
	t.Parallel()

	l := New(testOptions())

	w := serve(l, "203.0.113.1:1", "/api/sort")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get(HeaderRateLimitLimit))
	assert.Equal(t, "1", w.Header().Get(HeaderRateLimitRemaining))

	// Same /24, so the same bucket.
	w = serve(l, "203.0.113.200:1", "/api/sort")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(l, "203.0.113.3:1", "/api/sort")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "2", w.Header().Get("Retry-After"))
	assert.Equal(t, "0", w.Header().Get(HeaderRateLimitRemaining))
	assert.Equal(t, "Too many requests. Try again later.", gjson.Get(w.Body.String(), "error").String())

	// A different network has its own bucket.
	w = serve(l, "203.0.114.1:1", "/api/sort")
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 2, l.Len())
}

func TestEvaluate_Lists(t *testing.T) {
	t.Parallel()

	l := New(testOptions())

	w := serve(l, "192.0.2.66:1", "/api/sort")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Access denied.", gjson.Get(w.Body.String(), "error").String())

	for range 10 {
		w = serve(l, "198.51.100.4:1", "/api/sort")
		assert.Equal(t, http.StatusOK, w.Code)
	}

	assert.Zero(t, l.Len())
}

func TestEvaluate_ExcludedAndUnknown(t *testing.T) {
	t.Parallel()

	l := New(testOptions())

	for range 10 {
		w := serve(l, "203.0.113.1:1", "/healthz")
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := serve(l, "somewhere", "/api/sort")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCleanupExpired(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	l := New(testOptions())
	l.now = func() time.Time { return now }

	l.allow("203.0.113.0/24")

	now = now.Add(LimiterExpiryDuration / 2)
	l.allow("203.0.114.0/24")

	assert.Zero(t, l.cleanupExpired(now))

	now = now.Add(LimiterExpiryDuration/2 + time.Second)
	assert.Equal(t, 1, l.cleanupExpired(now))
	assert.Equal(t, 1, l.Len())
}
