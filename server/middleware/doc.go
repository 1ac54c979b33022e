// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package middleware provides the HTTP middleware of the Phrasebook service and
[CatchError], which adapts error-returning handlers.

Route definitions are centralized in router.DefineRoutes; the middleware
chain is assembled in router.RegisterMiddleware.
*/
package middleware
