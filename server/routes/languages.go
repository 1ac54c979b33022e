// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"

	"golang.org/x/text/language/display"

	"codeberg.org/phrasebook/phrasebook/i18n"
	"codeberg.org/phrasebook/phrasebook/server/request_context"
)

type languageInfo struct {
	Tag  string `json:"tag"`
	Name string `json:"name"` // in the language itself
}

type languagesResponse struct {
	Languages []languageInfo `json:"languages"`
	Current   string         `json:"current"`
}

// Languages lists the UI languages with a loaded catalogue and the one
// negotiated for this request.
func Languages(w http.ResponseWriter, r *http.Request) error {
	tags := i18n.Languages()

	infos := make([]languageInfo, 0, len(tags))
	for _, tag := range tags {
		infos = append(infos, languageInfo{Tag: tag.String(), Name: display.Self.Name(tag)})
	}

	return writeJSON(w, http.StatusOK, languagesResponse{
		Languages: infos,
		Current:   request_context.FromRequest(r).T.String(),
	})
}

// Health reports that the process is serving requests.
func Health(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	_, err := w.Write([]byte("ok"))

	return err
}

// CacheStats reports the render cache counters, or 404 when caching is disabled.
func (e *Engine) CacheStats(w http.ResponseWriter, r *http.Request) error {
	if e.Cache == nil {
		return NotFound(w, r)
	}

	return writeJSON(w, http.StatusOK, e.Cache.Stats())
}

type purgeResponse struct {
	Removed int `json:"removed"`
}

// PurgeCache drops every entry present in the render cache when the request
// arrives, or answers 404 when caching is disabled.
func (e *Engine) PurgeCache(w http.ResponseWriter, r *http.Request) error {
	if e.Cache == nil {
		return NotFound(w, r)
	}

	removed := 0

	for _, key := range e.Cache.Keys() {
		if e.Cache.Remove(key) {
			removed++
		}
	}

	return writeJSON(w, http.StatusOK, purgeResponse{Removed: removed})
}
