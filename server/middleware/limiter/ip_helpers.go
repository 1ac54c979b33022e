// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"net"
	"net/http"
	"strings"
)

// IPv4 and IPv6 address lengths as measured in bits.
const (
	ipv4BitLength = 32
	ipv6BitLength = 128
)

// getClientIP extracts the client's IP address from an HTTP request with proxy awareness.
//
// Proxy headers (X-Real-IP, X-Forwarded-For) are only trusted when the connection
// comes from a private or loopback address.
func getClientIP(r *http.Request) net.IP {
	remote := r.RemoteAddr
	if host, _, err := net.SplitHostPort(remote); err == nil {
		remote = host
	}

	ip := net.ParseIP(remote)

	if ip != nil && (ip.IsPrivate() || ip.IsLoopback()) {
		if real := net.ParseIP(strings.TrimSpace(r.Header.Get("X-Real-IP"))); real != nil {
			return real
		}

		// The last entry was added by the proxy closest to us.
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			parts := strings.Split(xff, ",")
			if last := net.ParseIP(strings.TrimSpace(parts[len(parts)-1])); last != nil {
				return last
			}
		}
	}

	return ip
}

// ipMatchesList checks if an IP is within any of the provided CIDRs or matches them exactly.
func ipMatchesList(ip net.IP, cidrs []string) bool {
	for _, entry := range cidrs {
		if exact := net.ParseIP(entry); exact != nil {
			if exact.Equal(ip) {
				return true
			}

			continue
		}

		if _, subnet, err := net.ParseCIDR(entry); err == nil && subnet.Contains(ip) {
			return true
		}
	}

	return false
}

// getNetwork masks ip with the prefix length for its address family.
func getNetwork(ip net.IP, ipv4Prefix, ipv6Prefix int) *net.IPNet {
	mask := net.CIDRMask(ipv6Prefix, ipv6BitLength)
	if ip.To4() != nil {
		ip = ip.To4()
		mask = net.CIDRMask(ipv4Prefix, ipv4BitLength)
	}

	return &net.IPNet{IP: ip.Mask(mask), Mask: mask}
}
