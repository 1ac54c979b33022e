// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"maps"
	"net/http"
	"slices"

	"codeberg.org/phrasebook/phrasebook/i18n"
	"codeberg.org/phrasebook/phrasebook/server/request_context"
)

type translateRequest struct {
	MsgID   string    `json:"msgid"`
	Plural  string    `json:"plural"`
	N       *int      `json:"n"`
	Context string    `json:"context"`
	Args    i18n.Args `json:"args"`
}

type translateResponse struct {
	Result   string `json:"result"`
	Language string `json:"language"`
}

// Translate looks a message up in the catalogue for the request language and
// expands it with args.
//
// When n is given the message is pluralised, with plural as the untranslated
// plural form; n is also available as the {n} placeholder unless args
// overrides it.
func (e *Engine) Translate(w http.ResponseWriter, r *http.Request) error {
	var req translateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}

	if req.MsgID == "" {
		return badRequest(r, "A msgid is required.")
	}

	kv := make([]any, 0, 2*len(req.Args)+2)
	for _, k := range slices.Sorted(maps.Keys(req.Args)) {
		kv = append(kv, k, req.Args[k])
	}

	ctx := r.Context()

	var result string

	switch {
	case req.N != nil:
		if _, ok := req.Args["n"]; !ok {
			kv = append(kv, "n", *req.N)
		}

		plural := req.Plural
		if plural == "" {
			plural = req.MsgID
		}

		if req.Context != "" {
			result = i18n.TrNC(ctx, req.Context, req.MsgID, plural, *req.N, kv...)
		} else {
			result = i18n.TrN(ctx, req.MsgID, plural, *req.N, kv...)
		}
	case req.Context != "":
		result = i18n.TrC(ctx, req.Context, req.MsgID, kv...)
	default:
		result = i18n.Tr(ctx, req.MsgID, kv...)
	}

	return writeJSON(w, http.StatusOK, translateResponse{
		Result:   result,
		Language: request_context.FromRequest(r).T.String(),
	})
}
