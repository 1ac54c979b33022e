// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Command i18n_extract collects the translatable messages of the module into
// a gettext template and reports how much of each catalogue is translated.
//
//	go run ./cmd/i18n_extract             # writes po/phrasebook.pot
//	go run ./cmd/i18n_extract -check      # also reports untranslated and inconsistent entries
package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"golang.org/x/tools/go/packages"

	"codeberg.org/phrasebook/phrasebook/core/audit"
)

func main() {
	audit.SetDefaultLogger()

	outPath := flag.String("o", "po/phrasebook.pot", "output file")
	check := flag.Bool("check", false, "report untranslated entries of every catalogue next to the output file")
	flag.Parse()

	wd, err := os.Getwd()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get working directory")
	}

	pkgs, err := packages.Load(&packages.Config{Mode: packages.LoadAllSyntax, Tests: false}, "./...")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load packages")
	}

	if packages.PrintErrors(pkgs) > 0 {
		log.Fatal().Msg("Failed to load packages due to errors")
	}

	entries := extract(pkgs, findProjectRoot(wd))

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		log.Fatal().Err(err).Msg("Failed to create output directory")
	}

	f, err := os.Create(*outPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *outPath).Msg("Failed to create template")
	}

	if err := writeTemplate(f, entries, detectVersion()); err != nil {
		log.Fatal().Err(err).Str("path", *outPath).Msg("Failed to write template")
	}

	if err := f.Close(); err != nil {
		log.Fatal().Err(err).Str("path", *outPath).Msg("Failed to write template")
	}

	log.Info().Int("messages", len(entries)).Str("path", *outPath).Msg("Wrote template")

	if !*check {
		return
	}

	results, err := checkCatalogues(os.DirFS(filepath.Dir(*outPath)), entries)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to check catalogues")
	}

	for _, c := range results {
		for _, k := range c.Missing {
			log.Warn().Str("catalogue", c.File).Str("context", k.ctx).Str("msgid", k.id).Msg("Untranslated")
		}

		for _, b := range c.Broken {
			log.Warn().Str("catalogue", c.File).Str("msgid", b.id).Str("reason", b.Reason).Msg("Inconsistent translation")
		}

		log.Info().
			Str("catalogue", c.File).
			Int("translated", c.Translated).
			Int("total", c.Total).
			Msg("Catalogue coverage")
	}
}
