// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"codeberg.org/phrasebook/phrasebook/config"
	"codeberg.org/phrasebook/phrasebook/server/middleware"
	"codeberg.org/phrasebook/phrasebook/server/middleware/limiter"
	"codeberg.org/phrasebook/phrasebook/server/middleware/set_request_context"
)

func (router *Router) RegisterMiddleware() {
	// the first middleware is the most outer / first executed one
	router.Use(middleware.WithServerTiming)
	router.Use(middleware.NormalizeURL)                // handle trailing slashes and /de/ prefixes
	router.Use(set_request_context.WithRequestContext) // needed for everything else
	router.Use(middleware.SetResponseHeaders)          // all responses need this

	if cfg := config.Global.Limiter; cfg.Enabled {
		router.limiter = limiter.New(limiter.Options{
			Rate:       cfg.Rate,
			Burst:      cfg.Burst,
			IPv4Prefix: cfg.IPv4Prefix,
			IPv6Prefix: cfg.IPv6Prefix,
			PassIPs:    cfg.PassIPs,
			BlockIPs:   cfg.BlockIPs,
		})

		router.Use(router.limiter.Evaluate)
	}
}
