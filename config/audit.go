// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"codeberg.org/phrasebook/phrasebook/core/audit"
)

const logFilePermissions = 0o666

// setupAudit rebuilds the global logger from the log section.
func (cfg *ServerConfig) setupAudit() {
	level := zerolog.DebugLevel
	if !cfg.Development.InDevelopment {
		level, _ = zerolog.ParseLevel(cfg.Log.Level)
	}

	zerolog.SetGlobalLevel(level)

	writers := make([]io.Writer, 0, len(cfg.Log.Outputs))

	for _, output := range cfg.Log.Outputs {
		switch output {
		case "/dev/stdout":
			writers = append(writers, audit.ConsoleWriter(os.Stdout))
		case "/dev/stderr":
			writers = append(writers, audit.ConsoleWriter(os.Stderr))
		default:
			file, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermissions) // #nosec:G302,G304
			if err != nil {
				// The logger is being replaced, so report on stderr directly.
				fmt.Fprintf(os.Stderr, "Failed to open log file %s: %v\n", output, err)

				continue
			}

			if cfg.Log.Format == "json" {
				writers = append(writers, file)
			} else {
				writers = append(writers, audit.ConsoleWriter(file))
			}
		}
	}

	if len(writers) == 0 {
		writers = append(writers, audit.ConsoleWriter(os.Stderr))
	}

	log.Logger = log.Output(zerolog.MultiLevelWriter(writers...))
}
