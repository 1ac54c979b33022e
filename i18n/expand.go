// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/a-h/templ"
)

var errInvalidArg = errors.New("argument must be a string or an object of strings")

// bareName matches placeholder names that are recognised even without an
// argument, so that a missing argument shows up as its name.
const bareName = `\w+`

var bareNamePattern = regexp.MustCompile(`\{(` + bareName + `)\}`)

// Arg is a placeholder argument. It holds either display text, created with
// [Text], or a set of anchor attributes, created with [Attrs].
//
// The zero value is an empty Text.
type Arg struct {
	text  string
	attrs map[string]string
}

// Args maps placeholder names to their arguments.
type Args map[string]Arg

// Text returns a scalar argument.
func Text(s string) Arg {
	return Arg{text: s}
}

// Attrs returns an attribute-map argument. When used as the target of a link
// token, every entry becomes an attribute of the generated anchor.
//
// The map is copied.
func Attrs(m map[string]string) Arg {
	attrs := make(map[string]string, len(m))
	maps.Copy(attrs, m)

	return Arg{attrs: attrs}
}

// IsAttrs reports whether a was created with [Attrs].
func (a Arg) IsAttrs() bool {
	return a.attrs != nil
}

// String returns the display text of a Text argument, or the empty string
// for an attribute map.
func (a Arg) String() string {
	return a.text
}

// Attributes returns a copy of the attribute map, or nil for Text arguments.
func (a Arg) Attributes() map[string]string {
	return maps.Clone(a.attrs)
}

// MarshalJSON encodes Text as a JSON string and Attrs as a JSON object.
func (a Arg) MarshalJSON() ([]byte, error) {
	if a.IsAttrs() {
		return json.Marshal(a.attrs)
	}

	return json.Marshal(a.text)
}

// UnmarshalJSON decodes a JSON string into Text and a JSON object of strings
// into Attrs.
func (a *Arg) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Text(s)

		return nil
	}

	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil || m == nil {
		return fmt.Errorf("%w: %s", errInvalidArg, data)
	}

	*a = Attrs(m)

	return nil
}

// segment is a piece of partially expanded output. Final segments were
// produced by a substitution and are never scanned again.
type segment struct {
	s     string
	final bool
}

// Expand substitutes the placeholders in template using args and returns the
// result, suitable for embedding in an HTML document.
//
// Two token forms are recognised:
//
//	{name}            replaced by the raw text of args[name]
//	{name|fallback}   replaced by an anchor built from args[name]
//
// Link tokens are resolved first and only for names present in args; others
// are left as written. The anchor's text is args[fallback] when fallback names
// a Text argument and the literal fallback otherwise. It is HTML-escaped, as
// are attribute values. A Text target becomes the href, an Attrs target
// contributes all of its attributes in lexicographic order.
//
// A name token is recognised when name is a key of args or a run of word
// characters. Without a Text argument it degrades to the bare name, so
// Expand("{x}", nil) is "x". Substituted values are final output and never
// expanded again. Template text outside of tokens is copied verbatim and is
// expected to be safe markup.
func Expand(template string, args Args) string {
	if !strings.Contains(template, "{") {
		return template
	}

	segs := []segment{{s: template}}
	names := bareNamePattern

	if alt := keyAlternation(args); alt != "" {
		links := regexp.MustCompile(`\{(` + alt + `)\|(.*?)\}`)
		names = regexp.MustCompile(`\{(` + alt + `|` + bareName + `)\}`)

		segs = replaceSubmatches(links, segs, expandLink(args))
	}

	segs = replaceSubmatches(names, segs, func(m []string) (string, bool) {
		if v, ok := args[m[1]]; ok && !v.IsAttrs() {
			return v.text, true
		}

		return m[1], true
	})

	var b strings.Builder
	for _, seg := range segs {
		b.WriteString(seg.s)
	}

	return b.String()
}

// expandLink returns the replacement function for link tokens.
func expandLink(args Args) func(m []string) (string, bool) {
	return func(m []string) (string, bool) {
		target, ok := args[m[1]]
		if !ok {
			return "", false
		}

		text := m[2]
		if v, ok := args[m[2]]; ok && !v.IsAttrs() {
			text = v.text
		}

		return anchor(target, text), true
	}
}

// ExpandHTML returns the result of [Expand] as a templ component that writes
// it without further escaping.
func ExpandHTML(template string, args Args) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, Expand(template, args))

		return err
	})
}

// keyAlternation returns the regexp alternation of every non-empty key in
// args, each quoted so it matches literally. Keys are sorted so the compiled
// pattern does not depend on map iteration order.
func keyAlternation(args Args) string {
	keys := make([]string, 0, len(args))

	for k := range args {
		if k != "" {
			keys = append(keys, regexp.QuoteMeta(k))
		}
	}

	slices.Sort(keys)

	return strings.Join(keys, "|")
}

// anchor renders an <a> element for target with escaped text.
func anchor(target Arg, text string) string {
	var b strings.Builder

	b.WriteString("<a ")

	if target.IsAttrs() {
		for i, k := range slices.Sorted(maps.Keys(target.attrs)) {
			if i > 0 {
				b.WriteByte(' ')
			}

			b.WriteString(k)
			b.WriteString(`="`)
			b.WriteString(html.EscapeString(target.attrs[k]))
			b.WriteByte('"')
		}
	} else {
		b.WriteString(`href="`)
		b.WriteString(html.EscapeString(target.text))
		b.WriteByte('"')
	}

	b.WriteByte('>')
	b.WriteString(html.EscapeString(text))
	b.WriteString("</a>")

	return b.String()
}

// replaceSubmatches runs re over every non-final segment. For each match,
// repl receives the submatches and returns the replacement and whether to
// apply it; replacements become final segments, unreplaced matches stay
// literal.
func replaceSubmatches(re *regexp.Regexp, segs []segment, repl func(m []string) (string, bool)) []segment {
	out := make([]segment, 0, len(segs))

	for _, seg := range segs {
		if seg.final {
			out = append(out, seg)

			continue
		}

		last := 0

		for _, loc := range re.FindAllStringSubmatchIndex(seg.s, -1) {
			m := make([]string, len(loc)/2)
			for i := range m {
				if loc[2*i] >= 0 {
					m[i] = seg.s[loc[2*i]:loc[2*i+1]]
				}
			}

			r, ok := repl(m)
			if !ok {
				continue
			}

			if loc[0] > last {
				out = append(out, segment{s: seg.s[last:loc[0]]})
			}

			out = append(out, segment{s: r, final: true})
			last = loc[1]
		}

		if last < len(seg.s) {
			out = append(out, segment{s: seg.s[last:]})
		}
	}

	return out
}
