// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"time"

	"github.com/rs/zerolog/log"
)

// maybeCleanup starts a background sweep of idle limiters at most once per
// CleanupInterval.
func (l *Limiter) maybeCleanup() {
	now := l.now()
	last := l.lastCleanup.Load()

	if now.Sub(time.Unix(0, last)) < CleanupInterval {
		return
	}

	// Only the caller that advances the timestamp runs the sweep.
	if !l.lastCleanup.CompareAndSwap(last, now.UnixNano()) {
		return
	}

	go func() {
		removed := l.cleanupExpired(now)

		log.Debug().
			Int("removed", removed).
			Dur("dur", time.Since(now)).
			Msg("Limiter cleanup")
	}()
}

// cleanupExpired drops limiters not used within LimiterExpiryDuration of now.
func (l *Limiter) cleanupExpired(now time.Time) int {
	removed := 0

	l.limiters.Range(func(key, value any) bool {
		lw := value.(*limiterWrapper)

		lw.mu.Lock()
		idle := now.Sub(lw.lastAccess)
		lw.mu.Unlock()

		if idle > LimiterExpiryDuration {
			l.limiters.Delete(key)

			removed++
		}

		return true
	})

	return removed
}
