// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package collation

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Strategy names a comparison implementation.
type Strategy string

// Possible values for Strategy.
const (
	// Auto selects Collator when the language has collation data, and
	// Fallback otherwise.
	Auto Strategy = "auto"
	// Collator uses the Unicode Collation Algorithm tailored to the language.
	Collator Strategy = "collator"
	// Fallback uses a case- and accent-insensitive natural comparison.
	Fallback Strategy = "fallback"
)

var (
	// ErrUnavailable is returned by [New] when the requested strategy cannot
	// serve the language.
	ErrUnavailable = errors.New("collation unavailable")

	// ErrUnknownStrategy is returned by [New] and [ParseStrategy] for an
	// unrecognised strategy name.
	ErrUnknownStrategy = errors.New("unknown collation strategy")
)

// ParseStrategy converts s to a Strategy. The empty string means [Auto].
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", Auto:
		return Auto, nil
	case Collator:
		return Collator, nil
	case Fallback:
		return Fallback, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// Comparator orders strings for display in one language. Embedded digit runs
// compare by numeric value, so "track2" sorts before "track10".
//
// A Comparator is immutable and safe for concurrent use.
type Comparator struct {
	tag      language.Tag
	strategy Strategy
	cmp      func(a, b string) int
}

// supportedMatcher matches tags against the languages that have collation
// data.
var supportedMatcher = sync.OnceValue(func() language.Matcher {
	return language.NewMatcher(collate.Supported())
})

// HasCollation reports whether tag matches any language with collation data.
// The match may be weak: tags without a tailoring of their own, such as und,
// report true and get the root collation.
func HasCollation(tag language.Tag) bool {
	_, _, conf := supportedMatcher().Match(tag)

	return conf != language.No
}

// New returns a Comparator for tag using strategy.
//
// With [Auto] the strategy is chosen once here: [Collator] when
// [HasCollation] reports true, [Fallback] otherwise. Requesting [Collator]
// for a language without collation data returns [ErrUnavailable].
func New(tag language.Tag, strategy Strategy) (*Comparator, error) {
	hasCollation := HasCollation(tag)

	switch strategy {
	case Auto, "":
		if hasCollation {
			strategy = Collator
		} else {
			strategy = Fallback
		}
	case Collator:
		if !hasCollation {
			return nil, fmt.Errorf("%w: no collation data for %s", ErrUnavailable, tag)
		}
	case Fallback:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}

	c := &Comparator{tag: tag, strategy: strategy}

	if strategy == Collator {
		c.cmp = newCollatorCompare(tag)
	} else {
		c.cmp = newNaturalCompare(tag)
	}

	return c, nil
}

// Compare returns a negative number if a sorts before b, a positive number if
// it sorts after, and zero if the two are equal for this language.
func (c *Comparator) Compare(a, b string) int {
	return c.cmp(a, b)
}

// Sort sorts items in place. Items that compare equal keep their relative
// order.
func (c *Comparator) Sort(items []string) {
	slices.SortStableFunc(items, c.cmp)
}

// Tag returns the language the Comparator was built for.
func (c *Comparator) Tag() language.Tag {
	return c.tag
}

// Strategy returns the resolved strategy, never [Auto].
func (c *Comparator) Strategy() Strategy {
	return c.strategy
}

// newCollatorCompare returns a numeric-aware collator comparison for tag.
// collate.Collator keeps scratch buffers, so each goroutine borrows its own.
func newCollatorCompare(tag language.Tag) func(a, b string) int {
	pool := &sync.Pool{
		New: func() any {
			return collate.New(tag, collate.Numeric)
		},
	}

	return func(a, b string) int {
		col := pool.Get().(*collate.Collator)
		defer pool.Put(col)

		if r := col.CompareString(a, b); r != 0 {
			return r
		}

		return strings.Compare(a, b)
	}
}
