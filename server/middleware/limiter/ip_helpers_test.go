// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"net"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetClientIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"public remote", "203.0.113.7:1234", nil, "203.0.113.7"},
		{"public remote ignores proxy headers", "203.0.113.7:1234", map[string]string{"X-Real-IP": "198.51.100.1"}, "203.0.113.7"},
		{"private remote trusts X-Real-IP", "10.0.0.2:80", map[string]string{"X-Real-IP": "198.51.100.1"}, "198.51.100.1"},
		{
			"loopback remote uses last X-Forwarded-For",
			"127.0.0.1:80",
			map[string]string{"X-Forwarded-For": "192.0.2.1, 198.51.100.2"},
			"198.51.100.2",
		},
		{"bad proxy header falls back", "10.0.0.2:80", map[string]string{"X-Real-IP": "nope"}, "10.0.0.2"},
		{"remote without port", "2001:db8::1", nil, "2001:db8::1"},
		{"garbage", "not-an-ip", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr

			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}

			got := getClientIP(r)
			if tt.want == "" {
				assert.Nil(t, got)

				return
			}

			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestIPMatchesList(t *testing.T) {
	t.Parallel()

	list := []string{"192.0.2.5", "10.0.0.0/8", "2001:db8::/32", "garbage"}

	tests := []struct {
		ip   string
		want bool
	}{
		{"192.0.2.5", true},
		{"192.0.2.6", false},
		{"10.200.3.4", true},
		{"2001:db8:1::1", true},
		{"2001:db9::1", false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, ipMatchesList(net.ParseIP(tt.ip), list))
		})
	}
}

func TestGetNetwork(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "192.0.2.0/24", getNetwork(net.ParseIP("192.0.2.77"), 24, 48).String())
	assert.Equal(t, "2001:db8:1::/48", getNetwork(net.ParseIP("2001:db8:1:2::5"), 24, 48).String())
	assert.Equal(t, "198.51.100.9/32", getNetwork(net.ParseIP("198.51.100.9"), 32, 64).String())
}
