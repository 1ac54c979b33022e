// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"
	"regexp"
	"strings"

	"golang.org/x/text/language"

	"codeberg.org/phrasebook/phrasebook/i18n"
)

// localeSegment matches the shape of a BCP 47 tag used as a path prefix.
var localeSegment = regexp.MustCompile(`^[a-z]{2,3}(?:[-_][A-Za-z0-9]{2,8})*$`)

// NormalizeURL is a middleware that handles URL normalization by:
//  1. Moving a leading locale segment into the lang query parameter, so
//     /de/api/list becomes /api/list?lang=de.
//  2. Removing trailing slashes from URLs (except root).
//
// Redirects use 308 so that POST bodies are resent.
func NormalizeURL(w http.ResponseWriter, r *http.Request, next http.Handler) {
	if tag, rest, ok := localePrefix(r.URL.Path); ok {
		target := *r.URL
		target.Path = rest

		q := target.Query()
		q.Set(i18n.LangParam, tag)
		target.RawQuery = q.Encode()

		http.Redirect(w, r, target.String(), http.StatusPermanentRedirect)

		return
	}

	if hasTrailingSlash(r) {
		target := *r.URL
		target.Path = strings.TrimRight(target.Path, "/")

		if target.Path == "" {
			target.Path = "/"
		}

		http.Redirect(w, r, target.String(), http.StatusPermanentRedirect)

		return
	}

	next.ServeHTTP(w, r)
}

// hasTrailingSlash checks if a request path has a trailing slash (except root).
func hasTrailingSlash(r *http.Request) bool {
	return r.URL.Path != "/" && strings.HasSuffix(r.URL.Path, "/")
}

// localePrefix splits "/<tag>/api/..." into the tag and the remaining path.
// Only prefixes in front of an /api/ path are recognised.
func localePrefix(path string) (string, string, bool) {
	first, rest, ok := strings.Cut(strings.TrimPrefix(path, "/"), "/")
	if !ok || !strings.HasPrefix(rest, "api/") || !localeSegment.MatchString(first) {
		return "", "", false
	}

	tag, err := language.Parse(strings.ReplaceAll(first, "_", "-"))
	if err != nil {
		return "", "", false
	}

	return tag.String(), "/" + rest, true
}
