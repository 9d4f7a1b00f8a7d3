// Package clientip extracts real client IP addresses from HTTP requests.
//
// Proxy headers are checked in priority order (Cloudflare, DigitalOcean,
// X-Forwarded-For, X-Real-IP) before falling back to the direct peer
// address. The result is used as the client identity for rate limiting,
// so when no valid address can be determined the Unknown sentinel is
// returned rather than an empty string.
package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Unknown is returned when no valid client IP can be determined.
const Unknown = "unknown"

// Proxy headers in priority order. The most trustworthy sources come first.
var headers = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// GetIP returns the client IP address for the request. It never panics and
// always returns a non-empty string.
func GetIP(r *http.Request) string {
	for _, h := range headers {
		if ip := parseHeader(r.Header.Get(h)); ip != "" {
			return ip
		}
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		if ip := normalize(host); ip != "" {
			return ip
		}
	}
	// RemoteAddr may already be a bare IP (no port) in tests and proxies.
	if ip := normalize(r.RemoteAddr); ip != "" {
		return ip
	}

	return Unknown
}

// parseHeader extracts the first valid IP from a header value.
// X-Forwarded-For may contain a chain "client, proxy1, proxy2"; the
// leftmost entry is the original client.
func parseHeader(value string) string {
	if value == "" {
		return ""
	}
	for part := range strings.SplitSeq(value, ",") {
		if ip := normalize(strings.TrimSpace(part)); ip != "" {
			return ip
		}
	}
	return ""
}

// normalize validates the address and returns its canonical form.
// The unspecified address (0.0.0.0, ::) is rejected.
func normalize(s string) string {
	ip := net.ParseIP(s)
	if ip == nil || ip.IsUnspecified() {
		return ""
	}
	return ip.String()
}
