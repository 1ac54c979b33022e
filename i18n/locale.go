// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// BaseLocale is the locale of the source messages and the final fallback.
const BaseLocale = "en"

// baseTag is the canonical tag for BaseLocale.
var baseTag = language.Make(BaseLocale)

// Languages returns the tags for which a catalogue is loaded, base locale
// included, sorted by tag string.
//
// The returned slice is a copy. Setup must be called successfully before
// using Languages; otherwise it panics.
func Languages() []language.Tag {
	if matcher == nil {
		panic("i18n: Setup must be called before calling Languages")
	}

	out := slices.Clone(supportedTags)

	slices.SortFunc(out, func(a, b language.Tag) int { return strings.Compare(a.String(), b.String()) })

	return out
}

// Match returns the supported tag that best matches the given preferences.
// Each preference may be a tag or an Accept-Language value. It returns the
// base tag when Setup has not been called or nothing matches.
func Match(preferred ...string) language.Tag {
	if matcher == nil {
		return baseTag
	}

	tag, _ := language.MatchStrings(matcher, preferred...)

	return supportedBase(tag)
}

// supportedBase maps a matcher result, which may carry extensions such as
// "-u-rg-...", back to the loaded tag it was derived from.
func supportedBase(tag language.Tag) language.Tag {
	_, idx, _ := matcher.Match(tag)
	if idx >= 0 && idx < len(supportedTags) {
		return supportedTags[idx]
	}

	return baseTag
}
