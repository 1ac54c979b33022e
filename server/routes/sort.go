// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"
	"slices"

	"codeberg.org/phrasebook/phrasebook/core/audit"
	"codeberg.org/phrasebook/phrasebook/i18n"
	"codeberg.org/phrasebook/phrasebook/i18n/collation"
)

type sortRequest struct {
	Items []string `json:"items"`
}

type sortResponse struct {
	Items    []string           `json:"items"`
	Strategy collation.Strategy `json:"strategy"`
	Language string             `json:"language"`
	Summary  string             `json:"summary"`
}

// Sort orders items for the document language, comparing embedded numbers
// by value.
func (e *Engine) Sort(w http.ResponseWriter, r *http.Request) error {
	if e.Comparator == nil {
		reason := "no comparator configured"
		if e.ComparatorErr != nil {
			reason = e.ComparatorErr.Error()
		}

		return &HTTPError{
			Status: http.StatusServiceUnavailable,
			Err:    i18n.NewUserError(r.Context(), "Sorting is unavailable: {reason}", "reason", reason),
		}
	}

	var req sortRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}

	items := slices.Clone(req.Items)
	if items == nil {
		items = []string{}
	}

	span := audit.Span{Kind: audit.Engine, Method: "sort", URL: e.Comparator.Tag().String(), Size: len(items)}
	span.Begin(r.Context())
	e.Comparator.Sort(items)
	span.End()

	n := len(items)

	return writeJSON(w, http.StatusOK, sortResponse{
		Items:    items,
		Strategy: e.Comparator.Strategy(),
		Language: e.Comparator.Tag().String(),
		Summary:  i18n.TrN(r.Context(), "Sorted {n} item", "Sorted {n} items", n, "n", n),
	})
}
