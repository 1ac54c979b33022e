// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"codeberg.org/phrasebook/phrasebook/i18n"
	"codeberg.org/phrasebook/phrasebook/server/middleware"
	"codeberg.org/phrasebook/phrasebook/server/routes"
)

// Rate limiting header names.
//
// ref: https://www.ietf.org/archive/id/draft-polli-ratelimit-headers-02.html
const (
	HeaderRateLimitLimit     = "RateLimit-Limit"
	HeaderRateLimitRemaining = "RateLimit-Remaining"
)

// excludedPaths are never limited.
var excludedPaths = []string{"/healthz"}

// Evaluate is the limiter middleware.
//
// Requests from the block list are refused, requests from the pass list and
// to excluded paths go through, and everything else takes a token from the
// bucket of the client's network.
func (l *Limiter) Evaluate(w http.ResponseWriter, r *http.Request, next http.Handler) {
	defer l.maybeCleanup()

	for _, prefix := range excludedPaths {
		if strings.HasPrefix(r.URL.Path, prefix) {
			next.ServeHTTP(w, r)

			return
		}
	}

	ip := getClientIP(r)
	if ip == nil {
		log.Warn().Str("remote_addr", r.RemoteAddr).Msg("Could not determine client IP")

		refuse(w, r, http.StatusBadRequest, "Your address could not be determined.")

		return
	}

	switch {
	case ipMatchesList(ip, l.opts.BlockIPs):
		refuse(w, r, http.StatusForbidden, "Access denied.")

		return
	case ipMatchesList(ip, l.opts.PassIPs):
		next.ServeHTTP(w, r)

		return
	}

	network := getNetwork(ip, l.opts.IPv4Prefix, l.opts.IPv6Prefix).String()

	allowed, remaining := l.allow(network)

	w.Header().Set(HeaderRateLimitLimit, strconv.Itoa(l.opts.Burst))
	w.Header().Set(HeaderRateLimitRemaining, strconv.Itoa(remaining))

	if !allowed {
		log.Info().Str("network", network).Msg("Rate limit exceeded")

		w.Header().Set("Retry-After", strconv.Itoa(l.retryAfter()))
		refuse(w, r, http.StatusTooManyRequests, "Too many requests. Try again later.")

		return
	}

	next.ServeHTTP(w, r)
}

// refuse answers with a translated JSON error through the common error path.
func refuse(w http.ResponseWriter, r *http.Request, status int, msgid i18n.MsgKey) {
	middleware.CatchError(func(_ http.ResponseWriter, r *http.Request) error {
		return &routes.HTTPError{Status: status, Err: i18n.NewUserError(r.Context(), string(msgid))}
	}).ServeHTTP(w, r)
}
