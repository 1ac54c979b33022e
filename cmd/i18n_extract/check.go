// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"fmt"
	"io/fs"
	"path"

	"github.com/leonelquinteros/gotext"
)

// coverage is the translation state of one catalogue.
type coverage struct {
	File       string
	Translated int
	Total      int
	Missing    []key
	Broken     []broken
}

// broken is a translation whose markup or placeholders differ from the source.
type broken struct {
	key
	Reason string
}

// checkCatalogues reports, for every .po file in fsys, which entries are not
// translated.
func checkCatalogues(fsys fs.FS, entries []entry) ([]coverage, error) {
	files, err := fs.Glob(fsys, "*.po")
	if err != nil {
		return nil, err
	}

	out := make([]coverage, 0, len(files))

	for _, file := range files {
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}

		po := gotext.NewPo()
		po.Parse(data)

		c := coverage{File: path.Base(file), Total: len(entries)}

		for _, e := range entries {
			if !translated(po, e.key) {
				c.Missing = append(c.Missing, e.key)

				continue
			}

			c.Translated++

			if reason := mismatch(e.id, lookup(po, e.key)); reason != "" {
				c.Broken = append(c.Broken, broken{key: e.key, Reason: reason})
			}
		}

		out = append(out, c)
	}

	return out, nil
}

func translated(po *gotext.Po, k key) bool {
	switch {
	case k.ctx != "" && k.plural != "":
		return po.IsTranslatedNC(k.id, 0, k.ctx) && po.IsTranslatedNC(k.id, 2, k.ctx)
	case k.plural != "":
		return po.IsTranslatedN(k.id, 0) && po.IsTranslatedN(k.id, 2)
	case k.ctx != "":
		return po.IsTranslatedC(k.id, k.ctx)
	default:
		return po.IsTranslated(k.id)
	}
}

// lookup returns the singular translation of k.
func lookup(po *gotext.Po, k key) string {
	switch {
	case k.ctx != "" && k.plural != "":
		return po.GetNC(k.id, k.plural, 1, k.ctx)
	case k.plural != "":
		return po.GetN(k.id, k.plural, 1)
	case k.ctx != "":
		return po.GetC(k.id, k.ctx)
	default:
		return po.Get(k.id)
	}
}
