// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"errors"
	"maps"
	"net/http"
	"net/http/httptest"

	"github.com/rs/zerolog/log"

	"codeberg.org/phrasebook/phrasebook/config"
	"codeberg.org/phrasebook/phrasebook/core/audit"
	"codeberg.org/phrasebook/phrasebook/server/request_context"
	"codeberg.org/phrasebook/phrasebook/server/routes"
)

// CatchError wraps HTTP handlers that return an error, providing centralized error handling,
// response buffering, and request logging.
//
// The handler's output is buffered. Any error it returns is stored in the
// request context, and the final response is chosen as follows:
//   - A *routes.HTTPError replaces the buffered response with a JSON error
//     body carrying the error's status.
//   - Any other error, or a 404 written by the handler, does the same with
//     500 or 404 respectively.
//   - Otherwise the buffered response is written to the client.
//
// Finally, it logs the completed request via the audit package.
func CatchError(handler func(w http.ResponseWriter, r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r = request_context.Ensure(r)
		rc := request_context.FromRequest(r)

		span := audit.Span{
			Kind:      audit.ToUser,
			RequestID: rc.RequestID,
			Method:    r.Method,
			URL:       r.URL.String(),
		}

		r = r.WithContext(span.Begin(r.Context()))

		recorder := httptest.NewRecorder()

		rc.RequestError = handler(recorder, r)

		var httpErr *routes.HTTPError

		switch {
		case errors.As(rc.RequestError, &httpErr):
			rc.StatusCode = httpErr.Status

			routes.ErrorJSON(w, r)
		case rc.RequestError != nil && recorder.Code < http.StatusBadRequest:
			rc.StatusCode = http.StatusInternalServerError

			routes.ErrorJSON(w, r)
		case recorder.Code == http.StatusNotFound:
			rc.StatusCode = http.StatusNotFound

			routes.ErrorJSON(w, r)
		default:
			rc.StatusCode = recorder.Code
			span.Size = recorder.Body.Len()

			maps.Copy(w.Header(), recorder.Header())
			w.WriteHeader(recorder.Code)

			if _, err := recorder.Body.WriteTo(w); err != nil {
				log.Err(err).Msg("Failed to write response body")
			}
		}

		span.End()

		span.StatusCode = rc.StatusCode
		span.Error = rc.RequestError

		if !config.Global.ShouldSkipServerLogging(r.URL.Path) {
			span.Log()
		}
	}
}
