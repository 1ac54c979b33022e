// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

//go:build test

/*
This file is included only when built with '-tags test'.
It provides a reset hook for unit tests. It is not part of production builds.
*/

package i18n

import "sync"

// ResetForTests clears global state so tests can exercise the uninitialised
// package.
//
// Usage:
//
//	go test -tags test ./...
//
// Only call from tests before spinning up goroutines that use this package.
func ResetForTests() {
	missingKeyOnce = sync.Map{}

	localesByTag = nil
	supportedTags = nil
	matcher = nil
}
