// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package idgen

import (
	"strings"
	"testing"
	"time"
)

func TestClockPart(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 7, 5, 9, 0, time.UTC)

	if got := clockPart(now); got != "070509" {
		t.Errorf("clockPart = %q, want 070509", got)
	}
}

func TestMake(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)

	for range 100 {
		id := Make()

		if len(id) != 10 {
			t.Fatalf("len(%q) = %d, want 10", id, len(id))
		}

		if strings.ContainsAny(id, "+/=") {
			t.Errorf("%q is not URL-safe", id)
		}

		seen[id] = true
	}

	if len(seen) < 90 {
		t.Errorf("only %d distinct ids out of 100", len(seen))
	}
}
