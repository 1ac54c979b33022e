// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"codeberg.org/phrasebook/phrasebook/i18n"
	"codeberg.org/phrasebook/phrasebook/server/request_context"
)

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

// ErrorJSON writes the error stored in the request context as a JSON body
// with the context's status code.
//
// Only [i18n.UserError] messages reach the client; other errors are replaced
// by a generic translated message and left to the request log.
func ErrorJSON(w http.ResponseWriter, r *http.Request) {
	rc := request_context.FromRequest(r)

	msg := i18n.Tr(r.Context(), "Something went wrong.")

	var userErr *i18n.UserError
	if errors.As(rc.RequestError, &userErr) {
		msg = userErr.Error()
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(rc.StatusCode)

	if err := json.NewEncoder(w).Encode(errorResponse{Error: msg, RequestID: rc.RequestID}); err != nil {
		log.Err(err).Str("request_id", rc.RequestID).Msg("Failed to write error response")
	}
}

// NotFound answers every path without a route.
func NotFound(_ http.ResponseWriter, r *http.Request) error {
	return &HTTPError{
		Status: http.StatusNotFound,
		Err:    i18n.NewUserError(r.Context(), "The page {path} was not found.", "path", r.URL.Path),
	}
}
