// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"net/http"

	"codeberg.org/phrasebook/phrasebook/server/middleware"
	"codeberg.org/phrasebook/phrasebook/server/middleware/limiter"
	"codeberg.org/phrasebook/phrasebook/server/routes"
)

// Router wraps http.ServeMux and provides middleware chaining functionality.
type Router struct {
	*http.ServeMux

	engine      *routes.Engine
	limiter     *limiter.Limiter
	middlewares []middleware.Middleware
}

// NewRouter creates a new Router whose API handlers use engine.
func NewRouter(engine *routes.Engine) *Router {
	return &Router{
		ServeMux: http.NewServeMux(),
		engine:   engine,
	}
}

// Use adds a middleware to the router's chain.
func (router *Router) Use(middleware middleware.Middleware) {
	router.middlewares = append(router.middlewares, middleware)
}

// Limiter returns the rate limiter registered by RegisterMiddleware, or nil.
func (router *Router) Limiter() *limiter.Limiter {
	return router.limiter
}

// runs router.middlewares[i] and every thereafter
func (router *Router) serve(i int, w http.ResponseWriter, r *http.Request) {
	if i < len(router.middlewares) {
		router.middlewares[i](w, r, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			router.serve(i+1, w, r)
		}))
	} else {
		router.ServeMux.ServeHTTP(w, r)
	}
}

// runs all middleware
func (router *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	router.serve(0, w, r)
}
