// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"codeberg.org/phrasebook/phrasebook/core/lrucache"
	"codeberg.org/phrasebook/phrasebook/i18n"
)

type listRequest struct {
	Items   []string   `json:"items"`
	Lists   [][]string `json:"lists"`
	LastTwo *string    `json:"lastTwo"`
	Rest    *string    `json:"rest"`
}

type listResponse struct {
	Result string `json:"result"`
}

type listBatchResponse struct {
	Results []string `json:"results"`
}

// List joins items into a natural-language list. Either one list is given as
// items, or several as lists; the joining templates default to the
// translations for the request language.
func (e *Engine) List(w http.ResponseWriter, r *http.Request) error {
	var req listRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}

	if req.Items != nil && req.Lists != nil {
		return badRequest(r, "Provide either items or lists, not both.")
	}

	lastTwo := i18n.LastTwoListItems.Tr(r.Context())
	if req.LastTwo != nil {
		lastTwo = *req.LastTwo
	}

	rest := i18n.ListItemCommaRest.Tr(r.Context())
	if req.Rest != nil {
		rest = *req.Rest
	}

	format := func(items []string) string {
		key := lrucache.Key(slices.Concat([]string{"list", lastTwo, rest}, items)...)

		return e.render(r.Context(), "list", key, func() string {
			return i18n.CommaList(items, lastTwo, rest)
		})
	}

	if req.Lists == nil {
		return writeJSON(w, http.StatusOK, listResponse{Result: format(req.Items)})
	}

	results := make([]string, len(req.Lists))

	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, items := range req.Lists {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			results[i] = format(items)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	return writeJSON(w, http.StatusOK, listBatchResponse{Results: results})
}
