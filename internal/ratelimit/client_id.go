package ratelimit

import (
	"net"
	"strings"
)

// UnknownClient is the shared bucket for requests with no usable
// transport metadata. Lumping them together errs toward stricter
// limiting when proxy configuration is incomplete.
const UnknownClient = "unknown"

// ResolveClientID derives a stable per-request client identity from
// transport metadata. It prefers the first address in the
// X-Forwarded-For chain (the original client, as appended by the
// nearest trusted proxy), falls back to the direct connection address,
// and finally to the shared "unknown" bucket. It never fails.
func ResolveClientID(forwardedFor, remoteAddr string) string {
	if forwardedFor != "" {
		first := strings.TrimSpace(strings.Split(forwardedFor, ",")[0])
		if first != "" {
			return first
		}
	}

	if remoteAddr != "" {
		if host, _, err := net.SplitHostPort(remoteAddr); err == nil && host != "" {
			return host
		}
		return remoteAddr
	}

	return UnknownClient
}
