// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"maps"
	"net/http"
	"strings"

	"codeberg.org/phrasebook/phrasebook/config"
)

// baseHeaders defines the default headers to be set in responses.
//
// Phrasebook-Version and Phrasebook-Revision are added dynamically in SetResponseHeaders.
var baseHeaders = http.Header{
	"Referrer-Policy":        {"no-referrer"},
	"X-Frame-Options":        {"DENY"},
	"X-Content-Type-Options": {"nosniff"},
	// Expanded HTML is meant to be embedded elsewhere, never rendered with
	// scripts or styles from this origin.
	"Content-Security-Policy": {strings.Join([]string{
		"default-src 'none'",
		"base-uri 'none'",
		"form-action 'none'",
		"frame-ancestors 'none'",
	}, "; ") + ";"},
}

// SetResponseHeaders adds default headers to HTTP responses.
func SetResponseHeaders(w http.ResponseWriter, r *http.Request, next http.Handler) {
	headers := w.Header()

	maps.Insert(headers, maps.All(baseHeaders))

	headers.Set("Cache-Control", cacheControl(r))
	headers.Set("Phrasebook-Version", config.BuildVersion)
	headers.Set("Phrasebook-Revision", config.Global.Build.Revision())

	next.ServeHTTP(w, r)
}

// cacheControl allows shared caching only for the language list, which
// changes with deployments, never with request bodies.
func cacheControl(r *http.Request) string {
	if config.Global.Development.InDevelopment {
		return "no-store"
	}

	if r.Method == http.MethodGet && r.URL.Path == "/api/languages" {
		return "private, max-age=300"
	}

	return "no-store"
}
