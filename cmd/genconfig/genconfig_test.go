// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/phrasebook/phrasebook/config"
)

func defaults() *config.ServerConfig {
	cfg := &config.ServerConfig{}
	cfg.SetDefaults()

	return cfg
}

func TestEnvExample(t *testing.T) {
	t.Parallel()

	out := envExample(defaults())

	assert.True(t, strings.HasPrefix(out, "# Phrasebook configuration"))
	assert.Contains(t, out, "## Basic\n")
	assert.Contains(t, out, "\nPHRASEBOOK_PORT=\"8383\"\n")
	assert.Contains(t, out, "# PHRASEBOOK_SHUTDOWN_TIMEOUT=10s\n")
	assert.Contains(t, out, "# PHRASEBOOK_LOG_OUTPUTS=/dev/stderr\n")
	assert.Contains(t, out, "# PHRASEBOOK_COLLATION=auto\n")
	assert.NotContains(t, out, "## Instance")
	assert.NotContains(t, out, "## Build")
}

func TestYAMLExample(t *testing.T) {
	t.Parallel()

	out, err := yamlExample(defaults())
	require.NoError(t, err)

	assert.Contains(t, out, "\nbasic:\n")
	assert.Contains(t, out, "  # port: \"8383\"\n")
	assert.Contains(t, out, "\ninternationalization:\n")
	assert.Contains(t, out, "  # collation: auto\n")

	for line := range strings.SplitSeq(out, "\n") {
		if strings.HasPrefix(line, " ") {
			assert.True(t, strings.HasPrefix(strings.TrimSpace(line), "#"), line)
		}
	}
}
