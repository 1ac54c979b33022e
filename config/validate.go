// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"regexp"
	"slices"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"codeberg.org/phrasebook/phrasebook/i18n/collation"
)

// validation errors.
var (
	errUnixSocketInvalidPermissions = errors.New("invalid Basic.UnixSocketPermissions value")
	errInvalidPort                  = errors.New("invalid Basic.Port value")
	errInvalidMaxBodyBytes          = errors.New("basic.maxBodyBytes must be positive")
	errInvalidCacheSize             = errors.New("cache.cacheSize must be positive when the cache is enabled")
	errInvalidLogLevel              = errors.New("invalid Log.Level")
	errInvalidLogFormat             = errors.New("log.logFormat must be console or json")
	errInvalidLimiterRate           = errors.New("limiter.rate must be positive")
	errInvalidLimiterBurst          = errors.New("limiter.burst must be at least 1")
	errInvalidIPv4Prefix            = errors.New("IPv4 prefix must be between 0 and 32")
	errInvalidIPv6Prefix            = errors.New("IPv6 prefix must be between 0 and 128")
	errInvalidAddressList           = errors.New("limiter address lists take IP addresses or CIDR ranges")
	errInvalidDocumentLanguage      = errors.New("invalid Internationalization.DocumentLanguage")
)

var (
	fileModeOctalRegexp  = regexp.MustCompile(`^0?[0-7]{3}$`)
	fileModeStringRegexp = regexp.MustCompile(`^(?:[r-][w-][x-]){3}$`)
)

// validateAndSet validates the server configuration and populates derived fields.
func (cfg *ServerConfig) validateAndSet() error {
	if err := cfg.validateListener(); err != nil {
		return err
	}

	if cfg.Basic.MaxBodyBytes <= 0 {
		return errInvalidMaxBodyBytes
	}

	if cfg.Cache.Enabled && cfg.Cache.Size <= 0 {
		return errInvalidCacheSize
	}

	if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil || cfg.Log.Level == "" {
		return fmt.Errorf("%w %q", errInvalidLogLevel, cfg.Log.Level)
	}

	if cfg.Log.Format != "console" && cfg.Log.Format != "json" {
		return errInvalidLogFormat
	}

	if err := cfg.validateInternationalization(); err != nil {
		return err
	}

	// Skip validating Limiter configuration if it's not enabled
	if !cfg.Limiter.Enabled {
		return nil
	}

	return cfg.validateLimiter()
}

func (cfg *ServerConfig) validateListener() error {
	if cfg.Basic.UnixSocket == "" {
		if cfg.Basic.Host == "" {
			cfg.Basic.Host = "localhost"
			log.Info().
				Str("host", cfg.Basic.Host).
				Msg("Binding to default host")
		}

		if cfg.Basic.Port == "" {
			cfg.Basic.Port = defaultPort
			log.Info().
				Str("port", cfg.Basic.Port).
				Msg("Using default port")
		}

		if port, err := strconv.Atoi(cfg.Basic.Port); err != nil || port < 0 || port > 65535 {
			return fmt.Errorf("%w %q", errInvalidPort, cfg.Basic.Port)
		}

		return nil
	}

	// A socket replaces the TCP listener.
	cfg.Basic.Host = ""
	cfg.Basic.Port = ""

	switch raw := cfg.Basic.RawUnixSocketPermissions; {
	case raw == "":
		cfg.Basic.UnixSocketPermissions = 0o666
	case fileModeOctalRegexp.MatchString(raw):
		mode, _ := strconv.ParseUint(raw, 8, 32)

		cfg.Basic.UnixSocketPermissions = os.FileMode(mode)
	case fileModeStringRegexp.MatchString(raw):
		var mode os.FileMode

		// "rwxr-x---": the first character is the highest bit.
		for i, c := range raw {
			if c != '-' {
				mode |= 1 << (8 - i)
			}
		}

		cfg.Basic.UnixSocketPermissions = mode
	default:
		return errUnixSocketInvalidPermissions
	}

	return nil
}

func (cfg *ServerConfig) validateInternationalization() error {
	i := &cfg.Internationalization

	tag, err := language.Parse(i.RawDocumentLanguage)
	if err != nil {
		return fmt.Errorf("%w %q: %w", errInvalidDocumentLanguage, i.RawDocumentLanguage, err)
	}

	i.DocumentLanguage = tag

	strategy, err := collation.ParseStrategy(i.RawCollation)
	if err != nil {
		return fmt.Errorf("invalid Internationalization.Collation: %w", err)
	}

	i.Collation = strategy

	return nil
}

func (cfg *ServerConfig) validateLimiter() error {
	l := &cfg.Limiter

	if l.Rate <= 0 {
		return errInvalidLimiterRate
	}

	if l.Burst < 1 {
		return errInvalidLimiterBurst
	}

	if l.IPv4Prefix < 0 || l.IPv4Prefix > 32 {
		return errInvalidIPv4Prefix
	}

	if l.IPv6Prefix < 0 || l.IPv6Prefix > 128 {
		return errInvalidIPv6Prefix
	}

	for _, entry := range slices.Concat(l.PassIPs, l.BlockIPs) {
		if net.ParseIP(entry) != nil {
			continue
		}

		if _, _, err := net.ParseCIDR(entry); err != nil {
			return fmt.Errorf("%w: %q", errInvalidAddressList, entry)
		}
	}

	return nil
}
