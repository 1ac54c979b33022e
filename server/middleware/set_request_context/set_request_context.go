// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package set_request_context

import (
	"net/http"

	"codeberg.org/phrasebook/phrasebook/server/request_context"
)

// RequestIDHeader echoes the request ID back to the client.
const RequestIDHeader = "X-Request-Id"

// WithRequestContext is a middleware that attaches a RequestContext to each HTTP request.
func WithRequestContext(w http.ResponseWriter, r *http.Request, next http.Handler) {
	r = r.WithContext(request_context.WithRequestContext(r.Context(), r))

	rc := request_context.FromRequest(r)

	w.Header().Set(RequestIDHeader, rc.RequestID)
	w.Header().Set("Content-Language", rc.T.String())
	w.Header().Add("Vary", "Accept-Language, Cookie")

	next.ServeHTTP(w, r)
}
