// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

//go:build integration

/*
To run these tests, specify `-tags=integration` when running `go test`.
*/
package main

import (
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const (
	// Server configuration constants.
	host      = "127.0.0.1:8282"
	authority = "http://127.0.0.1:8282"

	// Polling constants.
	retryCount  = 10
	dialTimeout = 250 * time.Millisecond
)

// httpTestCase defines a test case.
type httpTestCase struct {
	URL                string
	Method             string
	Body               string
	ExpectedStatusCode int

	// Optional gjson path and the value expected there.
	Path string
	Want string
}

// TestMain starts the server and waits for it to be available before running tests.
func TestMain(m *testing.M) {
	os.Setenv("PHRASEBOOK_HOST", "127.0.0.1")
	os.Setenv("PHRASEBOOK_PORT", "8282")
	os.Setenv("PHRASEBOOK_CONFIGFILE", os.DevNull+".absent")

	go func() {
		if err := run(); err != nil {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	if !waitForServerReady() {
		log.Fatal().Msg("Server did not start in time")
	}

	os.Exit(m.Run())
}

// waitForServerReady polls the server until it's available or the retries are exhausted.
func waitForServerReady() bool {
	for range retryCount {
		conn, err := net.DialTimeout("tcp", host, dialTimeout)
		if err == nil {
			_ = conn.Close()

			return true
		}

		time.Sleep(dialTimeout)
	}

	return false
}

// TestBasicAllRoutes exercises every route against the embedded catalogues.
func TestBasicAllRoutes(t *testing.T) {
	t.Parallel()

	testCases := []httpTestCase{
		{URL: "/healthz", Method: http.MethodGet},
		{URL: "/api/languages", Method: http.MethodGet, Path: "languages.#(tag==\"de\").name", Want: "Deutsch"},
		{URL: "/api/cache", Method: http.MethodGet, Path: "size", Want: "1000"},
		{
			URL:    "/api/expand",
			Method: http.MethodPost,
			Body:   `{"template": "{x|Home}", "args": {"x": "/"}}`,
			Path:   "result",
			Want:   `<a href="/">Home</a>`,
		},
		{
			URL:    "/api/list?lang=ja",
			Method: http.MethodPost,
			Body:   `{"items": ["赤", "青", "緑"]}`,
			Path:   "result",
			Want:   "赤、青と緑",
		},
		{
			URL:    "/api/sort",
			Method: http.MethodPost,
			Body:   `{"items": ["file10", "file9"]}`,
			Path:   "items.0",
			Want:   "file9",
		},
		{
			URL:    "/api/translate?lang=de",
			Method: http.MethodPost,
			Body:   `{"msgid": "Sorted {n} item", "plural": "Sorted {n} items", "n": 2}`,
			Path:   "language",
			Want:   "de",
		},
		{URL: "/api/expand", Method: http.MethodPost, Body: `{}`, ExpectedStatusCode: http.StatusBadRequest},
		{URL: "/nowhere", Method: http.MethodGet, ExpectedStatusCode: http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.Method+" "+tc.URL, func(t *testing.T) {
			t.Parallel()

			if tc.ExpectedStatusCode == 0 {
				tc.ExpectedStatusCode = http.StatusOK
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			req, err := http.NewRequestWithContext(ctx, tc.Method, authority+tc.URL, strings.NewReader(tc.Body))
			require.NoError(t, err)

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)

			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			assert.Equal(t, tc.ExpectedStatusCode, resp.StatusCode, string(body))

			if tc.Path != "" {
				assert.Equal(t, tc.Want, gjson.GetBytes(body, tc.Path).String())
			}
		})
	}
}
