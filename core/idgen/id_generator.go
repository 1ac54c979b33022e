// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package idgen makes short identifiers for requests and server instances.
package idgen

import (
	"crypto/rand"
	"encoding/base64"
	"time"
)

// Make returns a short ID: the wall-clock time as HHMMSS followed by four
// base64url characters of entropy. IDs sort roughly by creation time within
// a day.
func Make() string {
	var entropy [3]byte

	_, _ = rand.Read(entropy[:])

	return clockPart(time.Now()) + base64.RawURLEncoding.EncodeToString(entropy[:])
}

func clockPart(t time.Time) string {
	return t.Format("150405")
}
