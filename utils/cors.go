package utils

import (
	"net"
	"net/url"
	"strings"
)

// IsAllowedOrigin checks whether an Origin header value should be trusted.
// This is a single-user tool meant to run on a LAN, so localhost, private
// IPs, .local hostnames and single-label hostnames are allowed; public
// internet origins are not.
func IsAllowedOrigin(origin string) bool {
	if origin == "" {
		return false
	}

	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" {
		return false
	}

	hostname := parsed.Hostname()
	if hostname == "localhost" || strings.HasSuffix(hostname, ".local") {
		return true
	}
	// Single-label hostnames are LAN names.
	if !strings.Contains(hostname, ".") {
		return true
	}

	if ip := net.ParseIP(hostname); ip != nil {
		return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast()
	}
	return false
}
