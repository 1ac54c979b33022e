// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

const (
	LimiterExpiryDuration = time.Hour       // How long to keep idle limiters in memory.
	CleanupInterval       = 5 * time.Minute // Interval between limiter cleanup runs.
)

// Options configures a [Limiter].
type Options struct {
	Rate       float64  // tokens per second for each network
	Burst      int      // bucket size for each network
	IPv4Prefix int      // IPv4 clients are grouped by this prefix length
	IPv6Prefix int      // IPv6 clients are grouped by this prefix length
	PassIPs    []string // addresses or CIDRs that are never limited
	BlockIPs   []string // addresses or CIDRs that are always refused
}

// Limiter holds one token bucket per client network.
type Limiter struct {
	opts Options

	limiters    sync.Map // network string -> *limiterWrapper
	lastCleanup atomic.Int64
	now         func() time.Time
}

// limiterWrapper holds a rate limiter and the time it was last used.
type limiterWrapper struct {
	limiter *rate.Limiter

	mu         sync.Mutex
	lastAccess time.Time
}

// New returns a Limiter with an empty state.
func New(opts Options) *Limiter {
	l := &Limiter{opts: opts, now: time.Now}
	l.lastCleanup.Store(l.now().UnixNano())

	return l
}

// allow takes a token for network, reporting whether one was available and
// how many remain.
func (l *Limiter) allow(network string) (bool, int) {
	v, ok := l.limiters.Load(network)
	if !ok {
		v, _ = l.limiters.LoadOrStore(network, &limiterWrapper{
			limiter: rate.NewLimiter(rate.Limit(l.opts.Rate), l.opts.Burst),
		})
	}

	lw := v.(*limiterWrapper)

	lw.mu.Lock()
	defer lw.mu.Unlock()

	now := l.now()
	lw.lastAccess = now

	allowed := lw.limiter.AllowN(now, 1)

	return allowed, max(0, int(lw.limiter.TokensAt(now)))
}

// retryAfter returns the whole seconds until a token is available again.
func (l *Limiter) retryAfter() int {
	return max(1, int(1/l.opts.Rate+0.999))
}

// Len returns the number of networks currently tracked.
func (l *Limiter) Len() int {
	n := 0

	l.limiters.Range(func(_, _ any) bool {
		n++

		return true
	})

	return n
}
