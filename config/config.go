// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"codeberg.org/phrasebook/phrasebook/core/idgen"
	"codeberg.org/phrasebook/phrasebook/i18n/collation"
)

// Global exposes the server configuration.
var Global ServerConfig

// ServerConfig holds the application configuration.
type ServerConfig struct {
	Build buildInfo `yaml:"-"`

	Basic struct {
		Host                     string        `env:"PHRASEBOOK_HOST,overwrite"             yaml:"host"`
		Port                     string        `env:"PHRASEBOOK_PORT,overwrite"             yaml:"port"`
		UnixSocket               string        `env:"PHRASEBOOK_UNIXSOCKET"                 yaml:"unixSocket"`
		RawUnixSocketPermissions string        `env:"PHRASEBOOK_UNIXSOCKET_PERMISSIONS"     yaml:"unixSocketPermissions"`
		UnixSocketPermissions    os.FileMode   `yaml:"-"`
		ShutdownTimeout          time.Duration `env:"PHRASEBOOK_SHUTDOWN_TIMEOUT,overwrite" yaml:"shutdownTimeout"`
		MaxBodyBytes             int64         `env:"PHRASEBOOK_MAX_BODY_BYTES,overwrite"   yaml:"maxBodyBytes"`
	} `yaml:"basic"`

	// Cache configures the render cache for expand and list results.
	Cache struct {
		Enabled  bool `env:"PHRASEBOOK_CACHE,overwrite"          yaml:"enabled"`
		Size     int  `env:"PHRASEBOOK_CACHE_SIZE,overwrite"     yaml:"cacheSize"`
		Compress bool `env:"PHRASEBOOK_CACHE_COMPRESS,overwrite" yaml:"compress"`
	} `yaml:"cache"`

	Instance struct {
		StartingTime string `yaml:"-"`
		InstanceID   string `yaml:"-"`
	} `yaml:"-"`

	Development struct {
		InDevelopment bool `env:"PHRASEBOOK_DEV" yaml:"inDevelopment"`
	} `yaml:"development"`

	Log struct {
		Level   string   `env:"PHRASEBOOK_LOG_LEVEL,overwrite"   yaml:"logLevel"`
		Outputs []string `env:"PHRASEBOOK_LOG_OUTPUTS,overwrite" yaml:"logOutputs"`
		Format  string   `env:"PHRASEBOOK_LOG_FORMAT,overwrite"  yaml:"logFormat"`
	} `yaml:"log"`

	Limiter struct {
		Enabled    bool     `env:"PHRASEBOOK_LIMITER,overwrite"             yaml:"enabled"`
		Rate       float64  `env:"PHRASEBOOK_LIMITER_RATE,overwrite"        yaml:"rate"`
		Burst      int      `env:"PHRASEBOOK_LIMITER_BURST,overwrite"       yaml:"burst"`
		PassIPs    []string `env:"PHRASEBOOK_LIMITER_PASS_IPS,overwrite"    yaml:"passList"`
		BlockIPs   []string `env:"PHRASEBOOK_LIMITER_BLOCK_IPS,overwrite"   yaml:"blockList"`
		IPv4Prefix int      `env:"PHRASEBOOK_LIMITER_IPV4_PREFIX,overwrite" yaml:"ipv4Prefix"`
		IPv6Prefix int      `env:"PHRASEBOOK_LIMITER_IPV6_PREFIX,overwrite" yaml:"ipv6Prefix"`
	} `yaml:"limiter"`

	Internationalization struct {
		// RawDocumentLanguage is the BCP 47 tag the sort comparator is built for.
		RawDocumentLanguage string       `env:"PHRASEBOOK_DOCUMENT_LANGUAGE,overwrite" yaml:"documentLanguage"`
		DocumentLanguage    language.Tag `yaml:"-"`

		// RawCollation selects the comparator strategy: auto, collator or fallback.
		RawCollation string             `env:"PHRASEBOOK_COLLATION,overwrite" yaml:"collation"`
		Collation    collation.Strategy `yaml:"-"`

		// Strict mode for missing keys.
		//
		// When enabled, missing keys are logged (deduplicated per locale+key) and
		// visibly wrapped using markers.
		StrictMissingKeys bool `env:"PHRASEBOOK_STRICT_MISSING_KEYS" yaml:"strictMissingKeys"`
	} `yaml:"internationalization"`
}

// LoadConfig loads the configuration from various sources.
func (cfg *ServerConfig) LoadConfig() error {
	cfg.SetDefaults()

	cfg.Build.load()

	cfg.Instance.InstanceID = idgen.Make()
	cfg.Instance.StartingTime = time.Now().UTC().Format("2006-01-02 15:04")

	if err := cfg.readYAML(configFilePath()); err != nil {
		return fmt.Errorf("error loading YAML config: %w", err)
	}

	if err := useDotEnv(); err != nil {
		return fmt.Errorf("error using .env file: %w", err)
	}

	if err := readEnv(cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	if err := cfg.validateAndSet(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	cfg.setupAudit()

	cfg.print()

	if isContainerized() && cfg.Basic.UnixSocket == "" && cfg.Basic.Host != "0.0.0.0" && cfg.Basic.Host != "::" {
		log.Warn().
			Str("host", cfg.Basic.Host).
			Msg("Running in a container but host is not a wildcard address (e.g., '0.0.0.0' or '::'). The service may be unreachable from outside the container.")
	}

	return nil
}

// configFilePath picks the YAML file to load. The -config flag wins over
// PHRASEBOOK_CONFIGFILE; without either, ./config.yaml is used, or
// ./config.yml if only that exists.
func configFilePath() string {
	flagValue := parseCommandLineArgs()

	flagSet := false

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			flagSet = true
		}
	})

	switch {
	case flagSet:
		return flagValue
	case os.Getenv("PHRASEBOOK_CONFIGFILE") != "":
		return os.Getenv("PHRASEBOOK_CONFIGFILE")
	}

	if _, err := os.Stat(flagValue); os.IsNotExist(err) {
		if _, err := os.Stat("./config.yml"); err == nil {
			return "./config.yml"
		}
	}

	return flagValue
}

var skippedLogPaths = []string{"/healthz"}

// ShouldSkipServerLogging reports whether requests to path bypass request logging.
func (cfg *ServerConfig) ShouldSkipServerLogging(path string) bool {
	if cfg.Development.InDevelopment {
		return false
	}

	for _, prefix := range skippedLogPaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return false
}

// isContainerized checks for common indicators of a containerized environment.
//
// This is a heuristic and may not be 100% accurate.
func isContainerized() bool {
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true
	}

	for _, marker := range []string{"/.dockerenv", "/.containerenv"} {
		if _, err := os.Stat(marker); err == nil {
			return true
		}
	}

	// #nosec G304 -- well-known system file, read for heuristics only.
	cgroup, err := os.ReadFile("/proc/self/cgroup")
	if err != nil {
		return false
	}

	for _, keyword := range []string{"docker", "kubepods", "containerd", "lxc", "crio", ".machine"} {
		if strings.Contains(string(cgroup), keyword) {
			return true
		}
	}

	return false
}

// GetDurationEncoderOption returns a YAML encoder option that marshals
// time.Duration into a human-readable string format (e.g., "30m", "1h").
func GetDurationEncoderOption() yaml.EncodeOption {
	return yaml.CustomMarshaler[time.Duration](
		func(d time.Duration) ([]byte, error) {
			return yaml.Marshal(d.String())
		},
	)
}
