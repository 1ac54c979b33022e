// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollect(t *testing.T) {
	t.Parallel()

	got := collect(map[key][]ref{
		{id: "b"}:               {{"x.go", 9}, {"a.go", 3}, {"x.go", 9}},
		{id: "a"}:               {{"a.go", 1}},
		{ctx: "menu", id: "a"}:  {{"a.go", 2}},
		{id: "a", plural: "as"}: {{"a.go", 4}},
	})

	keys := make([]key, len(got))
	for i, e := range got {
		keys[i] = e.key
	}

	assert.Equal(t, []key{{id: "a"}, {id: "a", plural: "as"}, {id: "b"}, {ctx: "menu", id: "a"}}, keys)
	assert.Equal(t, []ref{{"a.go", 3}, {"x.go", 9}}, got[2].refs)
}

func TestWriteTemplate(t *testing.T) {
	t.Parallel()

	var sb strings.Builder

	err := writeTemplate(&sb, []entry{
		{key: key{id: `Say "hi"`}, refs: []ref{{"a.go", 1}, {"b.go", 2}}},
		{key: key{ctx: "menu", id: "Open"}, refs: []ref{{"m.go", 7}}},
		{key: key{id: "{n} item", plural: "{n} items"}, refs: []ref{{"s.go", 3}}},
		{key: key{id: "100% done"}, refs: []ref{{"p.go", 5}}},
	}, "v1")
	require.NoError(t, err)

	out := sb.String()

	assert.Contains(t, out, `"Project-Id-Version: Phrasebook v1\n"`)
	assert.Contains(t, out, "#: a.go:1 b.go:2\nmsgid \"Say \\\"hi\\\"\"\nmsgstr \"\"\n")
	assert.Contains(t, out, "#: m.go:7\nmsgctxt \"menu\"\nmsgid \"Open\"\n")
	assert.Contains(t, out, "msgid \"{n} item\"\nmsgid_plural \"{n} items\"\nmsgstr[0] \"\"\nmsgstr[1] \"\"\n")
	assert.Contains(t, out, "#: p.go:5\n#, no-c-format\nmsgid \"100% done\"\n")
	assert.True(t, strings.HasSuffix(out, "msgstr \"\"\n"))
}

func TestCheckCatalogues(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"de.po": {Data: []byte(`msgid ""
msgstr ""
"Content-Type: text/plain; charset=UTF-8\n"
"Plural-Forms: nplurals=2; plural=(n != 1);\n"

msgid "Hello"
msgstr "Hallo"

msgctxt "menu"
msgid "Open"
msgstr "Öffnen"

msgid "Read <b>{doc|this}</b>"
msgstr "Lies {doc|das}"
`)},
		"phrasebook.pot": {Data: []byte(``)},
	}

	entries := []entry{
		{key: key{id: "Hello"}},
		{key: key{ctx: "menu", id: "Open"}},
		{key: key{id: "Open"}},
		{key: key{id: "Read <b>{doc|this}</b>"}},
	}

	got, err := checkCatalogues(fsys, entries)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "de.po", got[0].File)
	assert.Equal(t, 3, got[0].Translated)
	assert.Equal(t, 4, got[0].Total)
	assert.Equal(t, []key{{id: "Open"}}, got[0].Missing)
	assert.Equal(t, []broken{{key: key{id: "Read <b>{doc|this}</b>"}, Reason: "markup differs"}}, got[0].Broken)
}

func TestMismatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		source, translation, want string
	}{
		{"Hello, {name}!", "Hallo, {name}!", ""},
		{"Read {doc|the guide}.", "Lies {doc|die Anleitung}.", ""},
		{"<b>{n}</b> items", "{n} <b>Einträge</b>", ""},
		{"<b>{n}</b> items", "{n} Einträge", "markup differs"},
		{"Hello, {name}!", "Hallo, {nom}!", "placeholders differ"},
		{"{a} and {b}", "{b} und {a}", ""},
	}

	for _, tt := range tests {
		t.Run(tt.source+" => "+tt.translation, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, mismatch(tt.source, tt.translation))
		})
	}
}
