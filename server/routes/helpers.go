// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"codeberg.org/phrasebook/phrasebook/config"
	"codeberg.org/phrasebook/phrasebook/i18n"
)

// fallbackBodyLimit applies when the configuration has not been loaded.
const fallbackBodyLimit = 1 << 20

// HTTPError is an error with the status code it should be reported with.
type HTTPError struct {
	Status int
	Err    error
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d %s: %v", e.Status, http.StatusText(e.Status), e.Err)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// badRequest reports a client error with a translated message.
func badRequest(r *http.Request, msgid i18n.MsgKey, kv ...any) *HTTPError {
	return &HTTPError{Status: http.StatusBadRequest, Err: i18n.NewUserError(r.Context(), string(msgid), kv...)}
}

// decodeJSON reads a single JSON document from the request body into v.
// Unknown fields and trailing data are rejected.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	limit := config.Global.Basic.MaxBodyBytes
	if limit <= 0 {
		limit = fallbackBodyLimit
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limit))
	dec.DisallowUnknownFields()

	err := dec.Decode(v)
	if err == nil && dec.More() {
		err = errors.New("unexpected data after JSON document")
	}

	var tooLarge *http.MaxBytesError

	switch {
	case err == nil:
		return nil
	case errors.As(err, &tooLarge):
		return &HTTPError{
			Status: http.StatusRequestEntityTooLarge,
			Err:    i18n.NewUserError(r.Context(), "The request body is larger than {limit} bytes.", "limit", tooLarge.Limit),
		}
	case errors.Is(err, io.EOF):
		return badRequest(r, "The request body is empty.")
	default:
		return &HTTPError{
			Status: http.StatusBadRequest,
			Err:    fmt.Errorf("%w: %w", i18n.NewUserError(r.Context(), "The request body is not valid JSON."), err),
		}
	}
}

// writeJSON writes v as the JSON response body.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	return json.NewEncoder(w).Encode(v)
}
