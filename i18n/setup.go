// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/leonelquinteros/gotext"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"codeberg.org/phrasebook/phrasebook/server/assets"
)

// catalogDir is the directory of the embedded assets that holds .po files.
const catalogDir = "po"

var (
	// poDomain is the gettext domain loaded for each locale.
	poDomain = "phrasebook"

	// localesByTag maps canonical BCP 47 tags, for example "de" or "pt-BR",
	// to their loaded gotext.Locale.
	localesByTag map[string]*gotext.Locale

	// supportedTags lists the base tag followed by every loaded locale.
	supportedTags []language.Tag

	// matcher is derived from supportedTags.
	matcher language.Matcher
)

// Setup loads the gettext catalogues from the embedded assets and builds the
// language matcher.
//
// Catalogues are read from:
//
//	po/<locale>.po
//
// where <locale> may use hyphens or underscores ("pt-BR.po", "pt_BR.po"). The
// template po/phrasebook.pot is ignored. The base locale is always supported
// and is the matcher's default.
//
// Calling Setup again replaces the previously loaded state. It returns an
// error if the catalogue directory cannot be read.
func Setup() error {
	Logger = log.With().Str("sys", "i18n").Logger()

	localesByTag = make(map[string]*gotext.Locale)
	supportedTags = nil
	matcher = nil

	entries, err := fs.ReadDir(assets.FS, catalogDir)
	if err != nil {
		return fmt.Errorf("failed to read %s directory: %w", catalogDir, err)
	}

	var loaded []language.Tag

	for _, entry := range entries {
		fileName := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(fileName, ".po") {
			continue
		}

		t, err := language.Parse(strings.ReplaceAll(strings.TrimSuffix(fileName, ".po"), "_", "-"))
		if err != nil {
			Logger.Warn().Err(err).Str("file", fileName).Msg("Skipping invalid locale file")

			continue
		}

		canonical := t.String()

		po := gotext.NewPoFS(assets.FS)
		po.ParseFile(path.Join(catalogDir, fileName))

		loc := gotext.NewLocale("", canonical)
		loc.AddTranslator(poDomain, po)

		localesByTag[canonical] = loc

		if t != baseTag {
			loaded = append(loaded, t)
		}

		Logger.Info().
			Str("locale", canonical).
			Str("domain", poDomain).
			Msg("Loaded locale")
	}

	slices.SortFunc(loaded, func(a, b language.Tag) int { return strings.Compare(a.String(), b.String()) })

	// baseTag first makes it the matcher's fallback.
	supportedTags = append([]language.Tag{baseTag}, loaded...)
	matcher = language.NewMatcher(supportedTags)

	return nil
}
