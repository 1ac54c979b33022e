// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package i18n renders localised messages: placeholder expansion, natural-language
lists and gettext .po catalogue lookups.

# Placeholders

Messages use brace placeholders rather than text/template actions:

	{name}            plain substitution
	{name|text}       a link to args[name], showing args[text] or the literal text

Expand them directly with [Expand]:

	i18n.Expand("Edited by {editor}", i18n.Args{"editor": i18n.Text(name)})
	i18n.Expand("See {doc|the guide}.", i18n.Args{
		"doc": i18n.Attrs(map[string]string{"href": "/doc", "target": "_blank"}),
	})

Link text and attribute values are HTML-escaped; plain substitutions are not,
so callers pass only trusted or pre-escaped markup there. A placeholder whose
argument is missing degrades to its bare name instead of failing.

# Translations

Use the original English UI text as the msgid:

	i18n.Tr(ctx, "Saved {count} edits", "count", strconv.Itoa(n))
	i18n.TrC(ctx, "menu", "Open")
	i18n.TrN(ctx, "{n} track", "{n} tracks", n, "n", strconv.Itoa(n))

Key-value pairs become [Args]; values may be strings, [Arg] values, or
map[string]string for link attributes.

Missing translations return the msgid. When strict mode is enabled they are
logged once per locale and key and wrapped as "⟦...⟧".

# Lists

[CommaList] joins items with caller-supplied templates and [List] uses the
translated templates for the locale in a context:

	i18n.List(ctx, []string{"Alice", "Bob", "Carol"}) // "Alice, Bob and Carol"

# Sorting

Locale-aware ordering lives in subpackage i18n/collation.
*/
package i18n
