// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"
)

const redactedValue = "[redacted]"

func (cfg *ServerConfig) print() {
	log.Info().
		Str("version", BuildVersion).
		Str("revision", cfg.Build.Revision()).
		Str("instance", cfg.Instance.InstanceID).
		Msg("Starting Phrasebook")

	configYAML, err := cfg.Printable()
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal config to YAML for printing")

		return
	}

	log.Info().Msg("Application configuration:")
	fmt.Fprintln(os.Stderr, string(configYAML))
}

// Printable returns cfg as YAML with client address lists redacted.
func (cfg *ServerConfig) Printable() ([]byte, error) {
	printable := *cfg

	// Address lists identify clients; show only that they are set.
	printable.Limiter.PassIPs = redactList(cfg.Limiter.PassIPs)
	printable.Limiter.BlockIPs = redactList(cfg.Limiter.BlockIPs)

	return yaml.MarshalWithOptions(printable, GetDurationEncoderOption())
}

func redactList(list []string) []string {
	if len(list) == 0 {
		return nil
	}

	return slices.Repeat([]string{redactedValue}, len(list))
}
