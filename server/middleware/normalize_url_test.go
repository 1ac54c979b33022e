// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		requestURL       string
		expectedStatus   int
		expectedLocation string
	}{
		{
			name:           "Root path should not redirect",
			requestURL:     "/",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Path without trailing slash should not redirect",
			requestURL:     "/api/list",
			expectedStatus: http.StatusOK,
		},
		{
			name:             "Path with trailing slash should redirect",
			requestURL:       "/api/list/",
			expectedStatus:   http.StatusPermanentRedirect,
			expectedLocation: "/api/list",
		},
		{
			name:             "Query parameters should be preserved in trailing slash redirect",
			requestURL:       "/api/expand/?format=html",
			expectedStatus:   http.StatusPermanentRedirect,
			expectedLocation: "/api/expand?format=html",
		},
		{
			name:             "Locale prefix moves into the query",
			requestURL:       "/de/api/list",
			expectedStatus:   http.StatusPermanentRedirect,
			expectedLocation: "/api/list?lang=de",
		},
		{
			name:             "Locale prefix with region",
			requestURL:       "/pt_br/api/sort?x=1",
			expectedStatus:   http.StatusPermanentRedirect,
			expectedLocation: "/api/sort?lang=pt-BR&x=1",
		},
		{
			name:             "Locale prefix overrides an existing lang parameter",
			requestURL:       "/ja/api/translate?lang=de",
			expectedStatus:   http.StatusPermanentRedirect,
			expectedLocation: "/api/translate?lang=ja",
		},
		{
			name:           "Non-API paths keep their first segment",
			requestURL:     "/de/healthz",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Invalid tag is not a prefix",
			requestURL:     "/zz-!/api/list",
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := Wrap(NormalizeURL, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, tt.requestURL, nil))

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			if location := w.Header().Get("Location"); location != tt.expectedLocation {
				t.Errorf("Expected location %q, got %q", tt.expectedLocation, location)
			}
		})
	}
}

func TestHasTrailingSlash(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path     string
		expected bool
	}{
		{"/", false},
		{"/api", false},
		{"/api/", true},
		{"/api/list/", true},
		{"/api/list", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)

			if result := hasTrailingSlash(req); result != tt.expected {
				t.Errorf("hasTrailingSlash(%q) = %v, expected %v", tt.path, result, tt.expected)
			}
		})
	}
}
