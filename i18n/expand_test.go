// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/phrasebook/phrasebook/i18n"
)

func TestExpand(t *testing.T) {
	t.Parallel()

	href := i18n.Text("http://example.com")
	attrs := i18n.Attrs(map[string]string{"rel": "nofollow", "href": "http://example.com", "target": "_blank"})

	tests := []struct {
		name     string
		template string
		args     i18n.Args
		want     string
	}{
		{"no placeholders", "Plain <b>text</b>.", i18n.Args{"x": i18n.Text("v")}, "Plain <b>text</b>."},
		{"no placeholders, no args", "Plain text.", nil, "Plain text."},
		{"name", "{x}", i18n.Args{"x": i18n.Text("v")}, "v"},
		{"missing name", "{x}", i18n.Args{}, "x"},
		{"missing name beside bound one", "{x} and {y}", i18n.Args{"x": i18n.Text("v")}, "v and y"},
		{"name value is raw", "{x}", i18n.Args{"x": i18n.Text("<b>&</b>")}, "<b>&</b>"},
		{"repeated name", "{x}{x}", i18n.Args{"x": i18n.Text("ab")}, "abab"},
		{"attrs in name position", "{x}", i18n.Args{"x": attrs}, "x"},
		{
			"link with text target",
			"{x|Click here}",
			i18n.Args{"x": href},
			`<a href="http://example.com">Click here</a>`,
		},
		{
			"link with attrs in key order",
			"{x|Click here}",
			i18n.Args{"x": attrs},
			`<a href="http://example.com" rel="nofollow" target="_blank">Click here</a>`,
		},
		{
			"link text from argument",
			"See {doc|title}.",
			i18n.Args{"doc": i18n.Text("/doc"), "title": i18n.Text("the guide")},
			`See <a href="/doc">the guide</a>.`,
		},
		{
			"link text names an attrs argument",
			"{doc|other}",
			i18n.Args{"doc": i18n.Text("/doc"), "other": attrs},
			`<a href="/doc">other</a>`,
		},
		{
			"link target missing",
			"{doc|the guide}",
			i18n.Args{"title": i18n.Text("x")},
			"{doc|the guide}",
		},
		{
			"link and name sharing a key",
			"{a|text} then {a}",
			i18n.Args{"a": i18n.Text("/a")},
			`<a href="/a">text</a> then /a`,
		},
		{
			"link escapes href and text",
			`{x|a "quoted" <tag> & 'apos'}`,
			i18n.Args{"x": i18n.Text(`/search?a=1&b="2"`)},
			`<a href="/search?a=1&amp;b=&#34;2&#34;">a &#34;quoted&#34; &lt;tag&gt; &amp; &#39;apos&#39;</a>`,
		},
		{
			"regexp metacharacters in keys",
			"{a.b} {a+b|go} {(x} {axb}",
			i18n.Args{"a.b": i18n.Text("dot"), "a+b": i18n.Text("/plus"), "(x": i18n.Text("paren")},
			`dot <a href="/plus">go</a> paren axb`,
		},
		{
			"fallback stops at first closing brace",
			"{x|one} two}",
			i18n.Args{"x": i18n.Text("/x")},
			`<a href="/x">one</a> two}`,
		},
		{
			"values are not expanded again",
			"{x} {y|z}",
			i18n.Args{"x": i18n.Text("{y}"), "y": i18n.Text("/y"), "z": i18n.Text("{x}")},
			`{y} <a href="/y">{x}</a>`,
		},
		{
			"empty key is ignored",
			"{}",
			i18n.Args{"": i18n.Text("v")},
			"{}",
		},
		{
			"unbalanced braces pass through",
			"{x {y",
			i18n.Args{"x": i18n.Text("v")},
			"{x {y",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, i18n.Expand(tt.template, tt.args))
		})
	}
}

func TestExpand_Anchor(t *testing.T) {
	t.Parallel()

	out := i18n.Expand("Read {doc|title} now", i18n.Args{
		"doc": i18n.Attrs(map[string]string{
			"href":  `/docs?q=a&b`,
			"class": `x" onclick="alert(1)`,
		}),
		"title": i18n.Text(`<script>alert("x")</script>`),
	})

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)

	links := doc.Find("a")
	require.Equal(t, 1, links.Length())

	href, _ := links.Attr("href")
	assert.Equal(t, "/docs?q=a&b", href)

	class, _ := links.Attr("class")
	assert.Equal(t, `x" onclick="alert(1)`, class)

	_, hasOnclick := links.Attr("onclick")
	assert.False(t, hasOnclick)

	assert.Equal(t, `<script>alert("x")</script>`, links.Text())
	assert.Equal(t, 0, doc.Find("script").Length())
	assert.Less(t, strings.Index(out, "class="), strings.Index(out, "href="))
}

func TestExpand_EscapesOnce(t *testing.T) {
	t.Parallel()

	out := i18n.Expand("{x|y}", i18n.Args{"x": i18n.Text("a&amp;b"), "y": i18n.Text("<&>")})

	assert.Equal(t, `<a href="a&amp;amp;b">&lt;&amp;&gt;</a>`, out)
	assert.Equal(t, 1, strings.Count(out, "&lt;"))
	assert.NotContains(t, out, "&amp;lt;")
}

func TestExpand_Deterministic(t *testing.T) {
	t.Parallel()

	args := i18n.Args{
		"a": i18n.Attrs(map[string]string{"z": "1", "y": "2", "x": "3", "href": "/"}),
		"b": i18n.Text("B"),
		"c": i18n.Text("C"),
	}

	first := i18n.Expand("{a|b} {b} {c} {a|c}", args)
	for range 20 {
		assert.Equal(t, first, i18n.Expand("{a|b} {b} {c} {a|c}", args))
	}

	assert.Equal(t, `<a href="/" x="3" y="2" z="1">B</a> B C <a href="/" x="3" y="2" z="1">C</a>`, first)
}

func TestExpandHTML(t *testing.T) {
	t.Parallel()

	var sb strings.Builder

	err := i18n.ExpandHTML("{x|home}", i18n.Args{"x": i18n.Text("/")}).Render(context.Background(), &sb)
	require.NoError(t, err)

	assert.Equal(t, `<a href="/">home</a>`, sb.String())
}

func TestArgJSON(t *testing.T) {
	t.Parallel()

	var args i18n.Args

	err := json.Unmarshal([]byte(`{"a": "text", "b": {"href": "/b", "rel": "me"}}`), &args)
	require.NoError(t, err)

	assert.False(t, args["a"].IsAttrs())
	assert.Equal(t, "text", args["a"].String())
	assert.True(t, args["b"].IsAttrs())
	assert.Equal(t, map[string]string{"href": "/b", "rel": "me"}, args["b"].Attributes())

	out, err := json.Marshal(args["b"])
	require.NoError(t, err)
	assert.JSONEq(t, `{"href": "/b", "rel": "me"}`, string(out))

	for _, bad := range []string{`{"a": 1}`, `{"a": ["x"]}`, `{"a": {"href": 2}}`} {
		var args i18n.Args

		assert.Error(t, json.Unmarshal([]byte(bad), &args), bad)
	}
}
