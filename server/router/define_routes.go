// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"net/http"
	"net/http/pprof"

	"codeberg.org/phrasebook/phrasebook/config"
	"codeberg.org/phrasebook/phrasebook/server/middleware"
	"codeberg.org/phrasebook/phrasebook/server/routes"
)

// DefineRoutes registers every endpoint on the router.
func (router *Router) DefineRoutes() {
	e := router.engine

	router.HandleFunc("POST /api/expand", middleware.CatchError(e.Expand))
	router.HandleFunc("POST /api/list", middleware.CatchError(e.List))
	router.HandleFunc("POST /api/sort", middleware.CatchError(e.Sort))
	router.HandleFunc("POST /api/translate", middleware.CatchError(e.Translate))

	router.HandleFunc("GET /api/languages", middleware.CatchError(routes.Languages))
	router.HandleFunc("GET /api/cache", middleware.CatchError(e.CacheStats))

	router.HandleFunc("GET /healthz", middleware.CatchError(routes.Health))

	// Anything else, including known paths with the wrong method.
	router.HandleFunc("/", middleware.CatchError(routes.NotFound))

	if config.Global.Development.InDevelopment {
		registerDebugRoutes(router)
	}
}

func registerDebugRoutes(router *Router) {
	router.HandleFunc("DELETE /debug/cache", middleware.CatchError(router.engine.PurgeCache))
	router.HandleFunc("GET /debug/pprof/", pprof.Index)
	router.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
	router.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
	router.HandleFunc("GET /debug/pprof/symbol", pprof.Symbol)
	router.HandleFunc("GET /debug/pprof/trace", pprof.Trace)
	router.Handle("GET /debug/config", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		out, err := config.Global.Printable()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)

			return
		}

		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(out)
	}))
}
