// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package collation

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// folder builds the primary comparison key: lower-cased with the language's
// casing rules and stripped of combining marks.
//
// Casers and transform chains are stateful, so folders are pooled.
type folder struct {
	caser cases.Caser
	strip transform.Transformer
}

func (f *folder) fold(s string) string {
	f.strip.Reset()

	stripped, _, err := transform.String(f.strip, s)
	if err != nil {
		stripped = s
	}

	f.caser.Reset()

	return f.caser.String(stripped)
}

// newNaturalCompare returns the fallback comparison for tag. Strings are
// compared by folded key first, then as written, then byte-wise, each level
// treating digit runs as numbers.
func newNaturalCompare(tag language.Tag) func(a, b string) int {
	pool := &sync.Pool{
		New: func() any {
			return &folder{
				caser: cases.Lower(tag),
				strip: transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
			}
		},
	}

	return func(a, b string) int {
		f := pool.Get().(*folder)
		fa, fb := f.fold(a), f.fold(b)
		pool.Put(f)

		if r := naturalCompare(fa, fb); r != 0 {
			return r
		}

		if r := naturalCompare(a, b); r != 0 {
			return r
		}

		return strings.Compare(a, b)
	}
}

// naturalCompare compares a and b rune by rune, except that runs of ASCII
// digits compare by numeric value. Leading zeros are ignored, so "007" and
// "7" are equal at this level.
func naturalCompare(a, b string) int {
	for a != "" && b != "" {
		if isDigit(a[0]) && isDigit(b[0]) {
			da, restA := digitRun(a)
			db, restB := digitRun(b)

			if r := compareNumeric(da, db); r != 0 {
				return r
			}

			a, b = restA, restB

			continue
		}

		ra, sa := utf8.DecodeRuneInString(a)
		rb, sb := utf8.DecodeRuneInString(b)

		if ra != rb {
			if ra < rb {
				return -1
			}

			return 1
		}

		a, b = a[sa:], b[sb:]
	}

	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return -1
	default:
		return 1
	}
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// digitRun splits the leading run of ASCII digits off s.
func digitRun(s string) (digits, rest string) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}

	return s[:i], s[i:]
}

// compareNumeric compares two digit strings of any length by value.
func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")

	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}

		return 1
	}

	return strings.Compare(a, b)
}
