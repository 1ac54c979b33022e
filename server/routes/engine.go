// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"context"

	"codeberg.org/phrasebook/phrasebook/core/audit"
	"codeberg.org/phrasebook/phrasebook/core/lrucache"
	"codeberg.org/phrasebook/phrasebook/i18n/collation"
)

// Engine holds the state shared by the engine routes. It is built once at
// startup and read-only afterwards.
type Engine struct {
	// Comparator sorts for the document language. It is nil when it could
	// not be built; ComparatorErr then holds the reason.
	Comparator    *collation.Comparator
	ComparatorErr error

	// Cache stores rendered expand and list results. nil disables caching.
	Cache *lrucache.Cache
}

// render returns the cached result for key, or computes it with fn. The
// lookup is reported as a cache span and the computation as an engine span,
// both named op.
func (e *Engine) render(ctx context.Context, op, key string, fn func() string) string {
	timed := func() string {
		span := audit.Span{Kind: audit.Engine, Method: op}
		span.Begin(ctx)
		defer span.End()

		return fn()
	}

	if e.Cache == nil {
		return timed()
	}

	span := audit.Span{Kind: audit.Cache, Method: op}
	ctx = span.Begin(ctx)
	defer span.End()

	return e.Cache.GetOrAdd(key, timed)
}
