// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"encoding/json"
	"net/http"

	"codeberg.org/phrasebook/phrasebook/core/lrucache"
	"codeberg.org/phrasebook/phrasebook/i18n"
)

type expandRequest struct {
	Template *string   `json:"template"`
	Args     i18n.Args `json:"args"`
}

type expandResponse struct {
	Result string `json:"result"`
}

// Expand substitutes the placeholders of a template.
//
// With ?format=html the result is streamed as an uncached text/html fragment
// instead of JSON.
func (e *Engine) Expand(w http.ResponseWriter, r *http.Request) error {
	var req expandRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}

	if req.Template == nil {
		return badRequest(r, "A template is required.")
	}

	if r.URL.Query().Get("format") == "html" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")

		return i18n.ExpandHTML(*req.Template, req.Args).Render(r.Context(), w)
	}

	// Map keys are marshalled in sorted order, so equal arguments give equal keys.
	args, err := json.Marshal(req.Args)
	if err != nil {
		return err
	}

	result := e.render(r.Context(), "expand", lrucache.Key("expand", *req.Template, string(args)), func() string {
		return i18n.Expand(*req.Template, req.Args)
	})

	return writeJSON(w, http.StatusOK, expandResponse{Result: result})
}
