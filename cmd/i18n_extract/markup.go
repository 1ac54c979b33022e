// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"maps"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// placeholder matches {name} and {name|fallback} tokens; only the name counts.
var placeholder = regexp.MustCompile(`\{([^{}|]+)(?:\|[^{}]*)?\}`)

// tagNames returns the start and end tags of s, e.g. ["<b>", "</b>"], sorted.
func tagNames(s string) []string {
	var out []string

	z := html.NewTokenizer(strings.NewReader(s))

	for {
		switch z.Next() {
		case html.ErrorToken:
			slices.Sort(out)

			return out
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			out = append(out, "<"+string(name)+">")
		case html.EndTagToken:
			name, _ := z.TagName()
			out = append(out, "</"+string(name)+">")
		}
	}
}

// placeholderNames returns the distinct placeholder names of s, sorted.
func placeholderNames(s string) []string {
	set := make(map[string]struct{})
	for _, m := range placeholder.FindAllStringSubmatch(s, -1) {
		set[m[1]] = struct{}{}
	}

	return slices.Sorted(maps.Keys(set))
}

// mismatch describes how a translation differs from its source in markup or
// placeholders, or returns the empty string.
func mismatch(source, translation string) string {
	switch {
	case !slices.Equal(tagNames(source), tagNames(translation)):
		return "markup differs"
	case !slices.Equal(placeholderNames(source), placeholderNames(translation)):
		return "placeholders differ"
	}

	return ""
}
