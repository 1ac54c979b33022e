// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

//go:build test

package i18n_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"codeberg.org/phrasebook/phrasebook/i18n"
)

func TestUninitialised(t *testing.T) {
	setup(t)
	i18n.ResetForTests()

	t.Cleanup(i18n.ResetForTests)

	assert.Panics(t, func() { i18n.Languages() })
	assert.Equal(t, language.English, i18n.Match("de"))

	r := httptest.NewRequest("GET", "/?lang=de", nil)
	assert.Equal(t, language.English, i18n.FromRequest(r))

	// Without catalogues every message is its own translation.
	de := ctxFor(language.German)
	assert.Equal(t, "Hello, Ada!", i18n.Tr(de, "Hello, {name}!", "name", "Ada"))
	assert.Equal(t, "a and b", i18n.List(de, []string{"a", "b"}))
}
