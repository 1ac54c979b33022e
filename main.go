// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Phrasebook is an HTTP service for message localization: placeholder
expansion, natural-language lists, locale-aware sorting and gettext
catalogue lookups.
*/
package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"codeberg.org/phrasebook/phrasebook/config"
	"codeberg.org/phrasebook/phrasebook/core/audit"
	"codeberg.org/phrasebook/phrasebook/core/lrucache"
	"codeberg.org/phrasebook/phrasebook/i18n"
	"codeberg.org/phrasebook/phrasebook/i18n/collation"
	"codeberg.org/phrasebook/phrasebook/server/assets"
	"codeberg.org/phrasebook/phrasebook/server/router"
	"codeberg.org/phrasebook/phrasebook/server/routes"
)

const (
	// Values for http.Server timeouts.
	// ref: gosec: G112
	readHeaderTimeout time.Duration = 15 * time.Second
	readTimeout       time.Duration = 15 * time.Second
	writeTimeout      time.Duration = 10 * time.Second
	idleTimeout       time.Duration = 30 * time.Second
)

var errChmodSocket = errors.New("failed to change unix socket permissions")

// embeddedContent holds the gettext catalogues.
//
//go:embed all:po
var embeddedContent embed.FS

// init assigns the embedded filesystem to the exported assets.FS variable.
//
//nolint:gochecknoinits // this is a good use of init()
func init() {
	assets.FS = embeddedContent
}

// main is the entry point of the application.
func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Application failed")
	}
}

// run orchestrates the application startup and graceful shutdown.
//
//nolint:funlen
func run() error {
	audit.SetDefaultLogger()

	if err := config.Global.LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := i18n.Setup(); err != nil {
		return fmt.Errorf("failed to initialize i18n engine: %w", err)
	}

	log.Info().Strs("languages", tagStrings(i18n.Languages())).Msg("Initialized i18n engine")

	engine, err := newEngine()
	if err != nil {
		return err
	}

	router := router.NewRouter(engine)
	router.DefineRoutes()
	router.RegisterMiddleware()

	// Create http.Server instance
	server := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	// Channel to listen for server errors
	serverErrors := make(chan error, 1)

	// Start main server in a goroutine
	go func() {
		listener, err := chooseListener()
		if err != nil {
			serverErrors <- fmt.Errorf("failed to create listener: %w", err)

			return
		}

		serverErrors <- server.Serve(listener)
	}()

	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until a shutdown signal or a server error is received
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case s := <-quit:
		log.Info().Str("signal", s.String()).Msg("Shutdown signal received")
		log.Info().Msg("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), config.Global.Basic.ShutdownTimeout)

		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
	}

	if l := router.Limiter(); l != nil {
		log.Info().Int("networks", l.Len()).Msg("Limiter state discarded")
	}

	if engine.Cache != nil {
		stats := engine.Cache.Stats()
		log.Info().
			Uint64("hits", stats.Hits).
			Uint64("misses", stats.Misses).
			Msg("Render cache statistics")
	}

	log.Info().Msg("Server exited gracefully")

	return nil
}

// newEngine builds the shared state of the engine routes.
//
// A comparator that cannot be built disables sorting but not the server.
func newEngine() (*routes.Engine, error) {
	cfg := config.Global.Internationalization

	engine := &routes.Engine{}

	engine.Comparator, engine.ComparatorErr = collation.New(cfg.DocumentLanguage, cfg.Collation)
	if engine.ComparatorErr != nil {
		log.Error().
			Err(engine.ComparatorErr).
			Str("language", cfg.DocumentLanguage.String()).
			Msg("Sorting disabled")
	} else {
		log.Info().
			Str("language", engine.Comparator.Tag().String()).
			Str("strategy", string(engine.Comparator.Strategy())).
			Msg("Initialized comparator")
	}

	if config.Global.Cache.Enabled {
		cache, err := lrucache.New(config.Global.Cache.Size, config.Global.Cache.Compress)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize render cache: %w", err)
		}

		engine.Cache = cache
	}

	return engine, nil
}

func chooseListener() (net.Listener, error) {
	// Check if we should use a Unix domain socket
	if config.Global.Basic.UnixSocket != "" {
		unixAddr := config.Global.Basic.UnixSocket

		unixListener, err := (&net.ListenConfig{}).Listen(context.Background(), "unix", unixAddr)
		if err != nil {
			return nil, fmt.Errorf("failed to start Unix socket listener on %v: %w", unixAddr, err)
		}

		if err := os.Chmod(unixAddr, config.Global.Basic.UnixSocketPermissions); err != nil {
			_ = unixListener.Close()

			return nil, fmt.Errorf("%w: %w", errChmodSocket, err)
		}

		log.Info().
			Str("address", unixAddr).
			Msg("Listening on Unix domain socket")

		return unixListener, nil
	}

	// Otherwise, fall back to TCP listener
	addr := net.JoinHostPort(config.Global.Basic.Host, config.Global.Basic.Port)

	tcpListener, err := (&net.ListenConfig{}).Listen(context.Background(), "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to start TCP listener on %v: %w", addr, err)
	}

	addr = tcpListener.Addr().String()

	// Extract the port for logging
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		_ = tcpListener.Close()

		return nil, fmt.Errorf("failed to parse listener address %q: %w", addr, err)
	}

	log.Info().
		Str("address", addr).
		Str("port", port).
		Str("url", fmt.Sprintf("http://localhost:%v/api/languages", port)).
		Msg("Listening on address")

	return tcpListener, nil
}

func tagStrings[T fmt.Stringer](tags []T) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.String()
	}

	return out
}
