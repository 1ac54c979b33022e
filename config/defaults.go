// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import "time"

const (
	defaultPort = "8383"

	// Default graceful shutdown timeout in seconds.
	defaultShutdownTimeoutSeconds = 10

	// Largest accepted request body (1 MiB).
	defaultMaxBodyBytes = 1 << 20

	// Default number of rendered strings kept by the render cache.
	defaultCacheSize = 1000

	// Requests per second and burst per client network.
	defaultLimiterRate  = 10.0
	defaultLimiterBurst = 50
)

// SetDefaults populates the configuration with default values.
func (cfg *ServerConfig) SetDefaults() {
	cfg.Basic.Host = "localhost"
	cfg.Basic.Port = defaultPort
	cfg.Basic.ShutdownTimeout = defaultShutdownTimeoutSeconds * time.Second
	cfg.Basic.MaxBodyBytes = defaultMaxBodyBytes

	cfg.Cache.Enabled = true
	cfg.Cache.Size = defaultCacheSize
	cfg.Cache.Compress = true

	cfg.Log.Level = "info"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"

	cfg.Limiter.Enabled = false
	cfg.Limiter.Rate = defaultLimiterRate
	cfg.Limiter.Burst = defaultLimiterBurst
	cfg.Limiter.IPv4Prefix = 24
	cfg.Limiter.IPv6Prefix = 48

	cfg.Internationalization.RawDocumentLanguage = "en"
	cfg.Internationalization.RawCollation = "auto"
	cfg.Internationalization.StrictMissingKeys = false
}
